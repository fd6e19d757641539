package model

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Numeric 宽松的数值字段, 接受数字与数字字符串; null 与空字符串视为缺失, 取值为 0
type Numeric struct {
	Value decimal.Decimal
	Valid bool
}

func NewNumeric(v float64) Numeric {
	return Numeric{Value: decimal.NewFromFloat(v), Valid: true}
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = Numeric{}
		return nil
	}
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' &&
		len(bytes.TrimSpace(trimmed[1:len(trimmed)-1])) == 0 {
		*n = Numeric{}
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*n = Numeric{Value: d, Valid: true}
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Value.MarshalJSON()
}

// Float64 缺失时为 0, 超出 float64 范围时为 ±Inf
func (n Numeric) Float64() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value.InexactFloat64()
}
