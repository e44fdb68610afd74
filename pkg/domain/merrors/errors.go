// 指示: miu200521358
// Package merrors はリグ生成で扱うエラー種別を提供する。
package merrors

import (
	"errors"
	"fmt"
)

// StructuralError は機能インスタンスの最小構造を満たさない入力を表す。
// 発生したインスタンスは中断されるが、他のインスタンスには影響しない。
type StructuralError struct {
	Feature string
	Root    string
	Reason  string
}

// NewStructuralError は構造エラーを生成する。
func NewStructuralError(feature, root, format string, params ...any) *StructuralError {
	return &StructuralError{
		Feature: feature,
		Root:    root,
		Reason:  fmt.Sprintf(format, params...),
	}
}

// Error はエラーメッセージを返す。
func (e *StructuralError) Error() string {
	return fmt.Sprintf("構造エラー [%s] ルートボーン '%s': %s", e.Feature, e.Root, e.Reason)
}

// IsStructuralError は構造エラーか判定する。
func IsStructuralError(err error) bool {
	var target *StructuralError
	return errors.As(err, &target)
}

// AsStructuralError は構造エラーを取り出す。
func AsStructuralError(err error) (*StructuralError, bool) {
	var target *StructuralError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// NameConflictError はボーン名の重複登録を表す。
type NameConflictError struct {
	Name string
}

// NewNameConflictError は名前重複エラーを生成する。
func NewNameConflictError(name string) *NameConflictError {
	return &NameConflictError{Name: name}
}

// Error はエラーメッセージを返す。
func (e *NameConflictError) Error() string {
	return fmt.Sprintf("ボーン名が重複しています: %s", e.Name)
}

// IsNameConflictError は名前重複エラーか判定する。
func IsNameConflictError(err error) bool {
	var target *NameConflictError
	return errors.As(err, &target)
}

// BoneNotFoundError は参照ボーンが存在しないことを表す。
type BoneNotFoundError struct {
	Key string
}

// NewBoneNotFoundError はボーン未検出エラーを生成する。
func NewBoneNotFoundError(key any) *BoneNotFoundError {
	return &BoneNotFoundError{Key: fmt.Sprint(key)}
}

// Error はエラーメッセージを返す。
func (e *BoneNotFoundError) Error() string {
	return fmt.Sprintf("ボーンが見つかりません: %s", e.Key)
}

// IsBoneNotFoundError はボーン未検出エラーか判定する。
func IsBoneNotFoundError(err error) bool {
	var target *BoneNotFoundError
	return errors.As(err, &target)
}

// CycleError は親子関係の循環を表す。
type CycleError struct {
	Child  string
	Parent string
}

// Error はエラーメッセージを返す。
func (e *CycleError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("親子関係が循環しています: %s", e.Child)
	}
	return fmt.Sprintf("親子関係が循環します: %s -> %s", e.Child, e.Parent)
}

// IsCycleError は循環エラーか判定する。
func IsCycleError(err error) bool {
	var target *CycleError
	return errors.As(err, &target)
}
