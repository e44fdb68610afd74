// 指示: miu200521358
package io_rig

import (
	"errors"
	"fmt"
)

// 入出力エラーID。
const (
	ErrorIDFileNotFound = "14101"
	ErrorIDExtInvalid   = "14102"
	ErrorIDParseFailed  = "14103"
	ErrorIDSaveFailed   = "14104"
)

// IoError は識別ID付きの入出力エラーを表す。
type IoError struct {
	ID      string
	Message string
	Err     error
}

// Error はエラーメッセージを返す。
func (e *IoError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.ID, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.ID, e.Message, e.Err)
}

// Unwrap は元エラーを返す。
func (e *IoError) Unwrap() error {
	return e.Err
}

// NewIoFileNotFound はファイル不在エラーを生成する。
func NewIoFileNotFound(path string, err error) *IoError {
	return &IoError{ID: ErrorIDFileNotFound, Message: fmt.Sprintf("ファイルが見つかりません: %s", path), Err: err}
}

// NewIoExtInvalid は拡張子不正エラーを生成する。
func NewIoExtInvalid(path string, err error) *IoError {
	return &IoError{ID: ErrorIDExtInvalid, Message: fmt.Sprintf("未対応の拡張子です: %s", path), Err: err}
}

// NewIoParseFailed は解析失敗エラーを生成する。
func NewIoParseFailed(message string, err error) *IoError {
	return &IoError{ID: ErrorIDParseFailed, Message: message, Err: err}
}

// NewIoSaveFailed は保存失敗エラーを生成する。
func NewIoSaveFailed(message string, err error) *IoError {
	return &IoError{ID: ErrorIDSaveFailed, Message: message, Err: err}
}

// ExtractErrorID はエラー連鎖から入出力エラーIDを取り出す。該当しない場合は空文字。
func ExtractErrorID(err error) string {
	var target *IoError
	if errors.As(err, &target) {
		return target.ID
	}
	return ""
}
