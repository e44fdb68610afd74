// 指示: miu200521358
package model

import (
	"math"
	"strconv"
	"strings"
)

// DriverKind はドライバー式の種別を表す。
type DriverKind string

const (
	// DRIVER_SUM は変数の総和。
	DRIVER_SUM DriverKind = "SUM"
	// DRIVER_AVERAGE は変数の平均。
	DRIVER_AVERAGE DriverKind = "AVERAGE"
	// DRIVER_POLYNOMIAL は変数平均 x に対する c0 + c1*x + c2*x^2 ...。
	DRIVER_POLYNOMIAL DriverKind = "POLYNOMIAL"
)

// DriverInfluencePath はコンストレイント影響度の駆動先パス。
const DriverInfluencePath = "influence"

// DriverTarget はドライバーの駆動先を表す。
type DriverTarget struct {
	Bone       BoneIndex
	Constraint int
	Path       string
}

// DriverVariable はボーンのカスタムプロパティを読む変数を表す。
type DriverVariable struct {
	Name     string
	Bone     BoneIndex
	Property string
}

// Driver はプロパティ値からコンストレイント値を計算する式を表す。
type Driver struct {
	Target       DriverTarget
	Kind         DriverKind
	Variables    []DriverVariable
	Coefficients []float64
}

// Expression はドライバー式を文字列で返す。
func (d Driver) Expression() string {
	if len(d.Variables) == 0 {
		return "0"
	}
	names := make([]string, 0, len(d.Variables))
	for _, variable := range d.Variables {
		names = append(names, variable.Name)
	}
	sum := strings.Join(names, " + ")
	switch d.Kind {
	case DRIVER_SUM:
		return sum
	case DRIVER_AVERAGE:
		return averageExpression(sum, len(names))
	case DRIVER_POLYNOMIAL:
		return polynomialExpression(averageExpression(sum, len(names)), d.Coefficients)
	default:
		return sum
	}
}

// Evaluate は変数値を与えて式を直接評価する。未指定の変数は 0 とみなす。
func (d Driver) Evaluate(values map[string]float64) float64 {
	total := 0.0
	for _, variable := range d.Variables {
		total += values[variable.Name]
	}
	switch d.Kind {
	case DRIVER_AVERAGE, DRIVER_POLYNOMIAL:
		if len(d.Variables) > 0 {
			total /= float64(len(d.Variables))
		}
	}
	if d.Kind != DRIVER_POLYNOMIAL {
		return total
	}
	result := 0.0
	for i, c := range d.Coefficients {
		result += c * math.Pow(total, float64(i))
	}
	return result
}

func averageExpression(sum string, count int) string {
	if count == 1 {
		return sum
	}
	return "(" + sum + ") / " + strconv.Itoa(count)
}

func polynomialExpression(x string, coefficients []float64) string {
	if len(coefficients) == 0 {
		return "0"
	}
	var builder strings.Builder
	for i, c := range coefficients {
		term := formatCoefficient(math.Abs(c))
		for k := 0; k < i; k++ {
			term += " * (" + x + ")"
		}
		switch {
		case i == 0 && c < 0:
			builder.WriteString("-" + term)
		case i == 0:
			builder.WriteString(term)
		case c < 0:
			builder.WriteString(" - " + term)
		default:
			builder.WriteString(" + " + term)
		}
	}
	return builder.String()
}

func formatCoefficient(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
