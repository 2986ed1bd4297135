package conv

import "testing"

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{name: "float64", in: 1.5, want: 1.5, wantOK: true},
		{name: "float32", in: float32(2.0), want: 2.0, wantOK: true},
		{name: "int", in: 3, want: 3.0, wantOK: true},
		{name: "int64", in: int64(4), want: 4.0, wantOK: true},
		{name: "int32", in: int32(5), want: 5.0, wantOK: true},
		{name: "bool true", in: true, want: 1.0, wantOK: true},
		{name: "bool false", in: false, want: 0.0, wantOK: true},
		{name: "string", in: "6", wantOK: false},
		{name: "nil", in: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ToFloat64(%v) = %v, %v，期望 %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"s": "hello", "f": 1.5}

	if got := ConfigGet(m, "s", "def"); got != "hello" {
		t.Errorf("ConfigGet(s) = %q", got)
	}
	if got := ConfigGet(m, "missing", "def"); got != "def" {
		t.Errorf("缺失 key 应返回默认值，实际 %q", got)
	}
	// 类型不符退回默认值
	if got := ConfigGet(m, "f", "def"); got != "def" {
		t.Errorf("类型不符应返回默认值，实际 %q", got)
	}
}

func TestConfigGetInt(t *testing.T) {
	m := map[string]any{
		"int":     7,
		"int64":   int64(8),
		"float64": 9.0,
		"string":  "10",
	}

	if got := ConfigGetInt(m, "int", 0); got != 7 {
		t.Errorf("int = %d", got)
	}
	if got := ConfigGetInt(m, "int64", 0); got != 8 {
		t.Errorf("int64 = %d", got)
	}
	if got := ConfigGetInt(m, "float64", 0); got != 9 {
		t.Errorf("float64 = %d", got)
	}
	if got := ConfigGetInt(m, "string", -1); got != -1 {
		t.Errorf("不支持的类型应返回默认值，实际 %d", got)
	}
	if got := ConfigGetInt(m, "missing", 42); got != 42 {
		t.Errorf("缺失 key 应返回默认值，实际 %d", got)
	}
}
