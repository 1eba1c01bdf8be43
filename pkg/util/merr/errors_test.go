// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package merr

import (
	"math"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
)

type ErrSuite struct {
	suite.Suite
}

func (s *ErrSuite) TestCode() {
	err := WrapErrEncodeUnsupportedType("chan int", "json")
	err = errors.Wrap(err, "failed to encode value")
	s.ErrorIs(err, ErrEncodeUnsupportedType)
	s.Equal(Code(ErrEncodeUnsupportedType), Code(err))
	s.Equal(int32(0), Code(nil))
	s.Equal(errUnexpected.errCode, Code(errors.New("plain")))

	sameCodeErr := newCodedError("new error", ErrEncodeUnsupportedType.errCode, false)
	s.True(sameCodeErr.Is(ErrEncodeUnsupportedType))
}

func (s *ErrSuite) TestWrap() {
	s.ErrorIs(WrapErrEncodeUnsupportedConstant(math.Inf(1), "xml"), ErrEncodeUnsupportedConstant)
	s.ErrorIs(WrapErrEncodeUnsupportedType("func()", "json"), ErrEncodeUnsupportedType)
	s.ErrorIs(WrapErrEncodeUnsupportedKey("struct {}", "json"), ErrEncodeUnsupportedKey)
	s.ErrorIs(WrapErrEncodeScopeUnsupported("body", "json"), ErrEncodeScopeUnsupported)
	s.ErrorIs(WrapErrEncodeProducerFailed("main.Doc", "xml"), ErrEncodeProducerFailed)
	s.ErrorIs(WrapErrIoFailed("profile.yaml", os.ErrNotExist), ErrIoFailed)
	s.NoError(WrapErrIoFailed("profile.yaml", nil))
	s.ErrorIs(WrapErrParameterInvalid("json", "yaml", "unknown base"), ErrParameterInvalid)
	s.ErrorIs(WrapErrParameterInvalidMsg("escape key %q", "ab"), ErrParameterInvalid)
	s.ErrorIs(WrapErrParameterMissing("name"), ErrParameterMissing)
	s.ErrorIs(WrapErrOperationNotSupported("decode"), ErrOperationNotSupported)
}

func (s *ErrSuite) TestMessageFields() {
	err := WrapErrEncodeUnsupportedConstant("NaN", "xml")
	s.Equal("unsupported constant[constant=NaN][format=xml]", err.Error())
}

func (s *ErrSuite) TestErrorType() {
	s.Equal(InputError, GetErrorType(WrapErrEncodeUnsupportedType("chan int", "json")))
	s.Equal(SystemError, GetErrorType(WrapErrIoFailed("p", os.ErrClosed)))
	s.Equal(SystemError, GetErrorType(errors.New("plain")))
	s.Equal("input_error", InputError.String())
}

func (s *ErrSuite) TestNotRetryable() {
	s.False(IsRetryableErr(WrapErrEncodeUnsupportedConstant("Infinity", "xml")))
	s.False(IsRetryableErr(errors.New("plain")))
}

func (s *ErrSuite) TestCombine() {
	var (
		errFirst  = errors.New("first")
		errSecond = errors.New("second")
		errThird  = errors.New("third")
	)

	err := Combine(errFirst, errSecond)
	s.True(errors.Is(err, errFirst))
	s.True(errors.Is(err, errSecond))
	s.False(errors.Is(err, errThird))

	s.Equal("first: second", err.Error())
}

func (s *ErrSuite) TestCombineOnlyNil() {
	s.Nil(Combine(nil, nil))
}

func (s *ErrSuite) TestCombineCode() {
	err := Combine(WrapErrParameterMissing("name"), WrapErrEncodeUnsupportedType("chan int", "json"))
	s.Equal(Code(ErrEncodeUnsupportedType), Code(err))
}

func TestErrors(t *testing.T) {
	suite.Run(t, new(ErrSuite))
}
