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
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Code 返回给定错误对应的错误码，nil 返回 0。
// 使用标准库 As 以便沿 Unwrap() []error 的多分支链查找。
func Code(err error) int32 {
	if err == nil {
		return 0
	}

	var coded codedError
	if stderrors.As(err, &coded) {
		return coded.code()
	}
	return errUnexpected.code()
}

func IsRetryableErr(err error) bool {
	var coded codedError
	if stderrors.As(err, &coded) {
		return coded.retriable
	}
	return false
}

func GetErrorType(err error) ErrorType {
	var coded codedError
	if stderrors.As(err, &coded) {
		return coded.errType
	}
	return SystemError
}

// Encode 相关错误封装。
func WrapErrEncodeUnsupportedConstant(constant any, format string) error {
	return wrapFields(ErrEncodeUnsupportedConstant,
		value("constant", constant),
		value("format", format),
	)
}

func WrapErrEncodeUnsupportedType(typ any, format string) error {
	return wrapFields(ErrEncodeUnsupportedType,
		value("type", typ),
		value("format", format),
	)
}

func WrapErrEncodeUnsupportedKey(typ any, format string) error {
	return wrapFields(ErrEncodeUnsupportedKey,
		value("keyType", typ),
		value("format", format),
	)
}

func WrapErrEncodeScopeUnsupported(tag string, format string) error {
	return wrapFields(ErrEncodeScopeUnsupported,
		value("tag", tag),
		value("format", format),
	)
}

func WrapErrEncodeProducerFailed(typ any, format string) error {
	return wrapFields(ErrEncodeProducerFailed,
		value("type", typ),
		value("format", format),
	)
}

// IO 相关错误封装。
func WrapErrIoFailed(key string, err error) error {
	if err == nil {
		return nil
	}
	return wrapFieldsWithDesc(ErrIoFailed, err.Error(), value("key", key))
}

// 参数相关错误封装。
func WrapErrParameterInvalid[T any](expected, actual T, msg ...string) error {
	err := wrapFields(ErrParameterInvalid,
		value("expected", expected),
		value("actual", actual),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrParameterInvalidMsg(fmt string, args ...any) error {
	return errors.Wrapf(ErrParameterInvalid, fmt, args...)
}

func WrapErrParameterMissing[T any](param T, msg ...string) error {
	err := wrapFields(ErrParameterMissing,
		value("missing_param", param),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrOperationNotSupported(operation string) error {
	return wrapFields(ErrOperationNotSupported, value("operation", operation))
}

func wrapFields(err codedError, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.detail = err.msg
	return err
}

func wrapFieldsWithDesc(err codedError, desc string, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.msg += ": " + desc
	err.detail = err.msg
	return err
}

type errorField interface {
	String() string
}

type valueField struct {
	name  string
	value any
}

func value(name string, value any) valueField {
	return valueField{
		name,
		value,
	}
}

func (f valueField) String() string {
	return fmt.Sprintf("%s=%v", f.name, f.value)
}
