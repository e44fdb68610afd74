// 指示: miu200521358
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/mmath"
)

// Params は機能ルートに付与された作者パラメータを表す。
type Params map[string]any

// Has はキーが存在するか判定する。
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int は整数値を返す。変換できない場合は def を返す。
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// Float は実数値を返す。変換できない場合は def を返す。
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// Bool は真偽値を返す。変換できない場合は def を返す。
func (p Params) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// String は文字列値を返す。
func (p Params) String(key string, def string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case nil:
		return def
	default:
		return fmt.Sprint(v)
	}
}

// Axis は軸指定を返す。不正値の場合は def を返す。
func (p Params) Axis(key string, def Axis) Axis {
	raw, ok := p[key].(string)
	if !ok {
		return def
	}
	axis, err := ParseAxis(raw)
	if err != nil {
		return def
	}
	return axis
}

// LookupAxis は軸指定を返す。未指定なら def、解析できない値はエラーを返す。
func (p Params) LookupAxis(key string, def Axis) (Axis, error) {
	value, ok := p[key]
	if !ok || value == nil {
		return def, nil
	}
	raw, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("軸指定は文字列が必要です: %s=%v", key, value)
	}
	return ParseAxis(raw)
}

// Layers はレイヤー指定を返す。真偽値配列と番号配列の両方を受け付ける。
func (p Params) Layers(key string) (Layers, bool) {
	var layers Layers
	switch v := p[key].(type) {
	case []bool:
		for i, on := range v {
			if i < LayerCount {
				layers[i] = on
			}
		}
		return layers, true
	case []int:
		return LayersOf(v...), true
	case []any:
		for i, item := range v {
			switch x := item.(type) {
			case bool:
				if i < LayerCount {
					layers[i] = x
				}
			case int:
				if x >= 0 && x < LayerCount {
					layers[x] = true
				}
			case float64:
				if x >= 0 && int(x) < LayerCount {
					layers[int(x)] = true
				}
			}
		}
		return layers, true
	}
	return layers, false
}

// Axis は軸指定を表す。
type Axis string

const (
	AXIS_X     Axis = "X"
	AXIS_Y     Axis = "Y"
	AXIS_Z     Axis = "Z"
	AXIS_NEG_X Axis = "-X"
	AXIS_NEG_Y Axis = "-Y"
	AXIS_NEG_Z Axis = "-Z"
)

// ParseAxis は軸名を解析する。"automatic" は X とみなす。
func ParseAxis(value string) (Axis, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, "+")
	switch normalized {
	case "X", "AUTOMATIC":
		return AXIS_X, nil
	case "Y":
		return AXIS_Y, nil
	case "Z":
		return AXIS_Z, nil
	case "-X":
		return AXIS_NEG_X, nil
	case "-Y":
		return AXIS_NEG_Y, nil
	case "-Z":
		return AXIS_NEG_Z, nil
	}
	return "", fmt.Errorf("不正な軸指定です: %s", value)
}

// IsNegative は負方向指定か判定する。
func (a Axis) IsNegative() bool {
	return strings.HasPrefix(string(a), "-")
}

// Mask は軸マスクを返す。
func (a Axis) Mask() AxisMask {
	switch strings.TrimPrefix(string(a), "-") {
	case "Y":
		return AxisMask{Y: true}
	case "Z":
		return AxisMask{Z: true}
	default:
		return AxisMask{X: true}
	}
}

// Vector は軸方向の単位ベクトルを返す。
func (a Axis) Vector() mmath.Vec3 {
	var v mmath.Vec3
	switch strings.TrimPrefix(string(a), "-") {
	case "Y":
		v = mmath.UnitY
	case "Z":
		v = mmath.UnitZ
	default:
		v = mmath.UnitX
	}
	if a.IsNegative() {
		return v.Negated()
	}
	return v
}
