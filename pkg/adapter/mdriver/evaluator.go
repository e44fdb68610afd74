// 指示: miu200521358
// Package mdriver は生成したドライバー式の解釈と評価を提供する。
package mdriver

import (
	"fmt"
	"sync"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"gopkg.in/Knetic/govaluate.v3"
)

// Evaluator は govaluate でドライバー式を解釈・評価する。解釈済みの式は式文字列ごとに保持する。
type Evaluator struct {
	mu       sync.RWMutex
	compiled map[string]*govaluate.EvaluableExpression
}

// NewEvaluator は Evaluator を生成する。
func NewEvaluator() *Evaluator {
	return &Evaluator{compiled: make(map[string]*govaluate.EvaluableExpression)}
}

// Compile は式を解釈できるか検証する。
func (e *Evaluator) Compile(expression string) error {
	_, err := e.expression(expression)
	return err
}

// Evaluate は変数値を与えてドライバーを評価する。未指定の変数は 0 とみなす。
func (e *Evaluator) Evaluate(driver model.Driver, values map[string]float64) (float64, error) {
	expr, err := e.expression(driver.Expression())
	if err != nil {
		return 0, err
	}
	params := make(map[string]interface{}, len(driver.Variables))
	for _, variable := range driver.Variables {
		params[variable.Name] = values[variable.Name]
	}
	for _, name := range expr.Vars() {
		if _, ok := params[name]; !ok {
			return 0, fmt.Errorf("ドライバー式に未定義の変数があります: %s", name)
		}
	}
	result, err := expr.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("ドライバー式の評価に失敗しました: %q: %w", driver.Expression(), err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("ドライバー式の結果が数値ではありません: %q -> %v", driver.Expression(), result)
	}
	return value, nil
}

// EvaluateDefaults は変数が参照するプロパティの既定値でドライバーを評価する。
func (e *Evaluator) EvaluateDefaults(sk *model.Skeleton, driver model.Driver) (float64, error) {
	return e.Evaluate(driver, DefaultValues(sk, driver, nil))
}

// DefaultValues はドライバー変数の値をプロパティ既定値から集める。
// overrides は "ボーン名/プロパティ名" をキーに既定値を上書きする。
func DefaultValues(sk *model.Skeleton, driver model.Driver, overrides map[string]float64) map[string]float64 {
	values := make(map[string]float64, len(driver.Variables))
	for _, variable := range driver.Variables {
		key := PropertyKey(sk.NameOf(variable.Bone), variable.Property)
		if value, ok := overrides[key]; ok {
			values[variable.Name] = value
			continue
		}
		bone, err := sk.Get(variable.Bone)
		if err != nil {
			continue
		}
		if prop, ok := bone.Property(variable.Property); ok {
			values[variable.Name] = prop.Default
		}
	}
	return values
}

// PropertyKey は上書き値のキーを返す。
func PropertyKey(bone, property string) string {
	return bone + "/" + property
}

// expression は解釈済みの式を返す。未解釈なら解釈して保持する。
func (e *Evaluator) expression(expression string) (*govaluate.EvaluableExpression, error) {
	e.mu.RLock()
	expr, ok := e.compiled[expression]
	e.mu.RUnlock()
	if ok {
		return expr, nil
	}
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		logDriverDebug("ドライバー式の解釈に失敗: %q err=%v", expression, err)
		return nil, fmt.Errorf("ドライバー式を解釈できません: %q: %w", expression, err)
	}
	e.mu.Lock()
	e.compiled[expression] = expr
	e.mu.Unlock()
	return expr, nil
}

// logDriverDebug はドライバー評価のDEBUGログを出力する。
func logDriverDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}
