package src

import (
	"runtime"
	"strconv"
	"strings"
	"testing"
)

func TestShortFnName(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"shortFunc", "shortFunc"},
		{"pck.shortFunc", "pck.shortFunc"},
		{"vvvv/pck.shortFunc", "pck.shortFunc"},
		{"gggg/vvvv/pck.(*abc).shortFunc.func2", "(*a).shortFunc.func2"},
		{"gggg/vvvv/pck.(*abc).shortFunc.funcA.funcB.do", "(*a).shortFunc.funcA.funcB.do"},
		{"abc.(*HttpProxy).AddHealthcheckFilter", "(*H).AddHealthcheckFilter"},
		{"pkg/svc.(*UserService).LoadUserProfileWithCache.func1.func2", "LoadUserProfileWithCache.func1.func2"},
		{"[...]abc", "[...]abc"},
	}
	for _, c := range cases {
		if v := shortFnName(c.in); v != c.expected {
			t.Fatalf("shortFnName(%q), expected: %q, actual: %q", c.in, c.expected, v)
		}
	}
}

func TestShortFile(t *testing.T) {
	if v := shortFile("/home/dev/proj/service/user.go"); v != "service/user.go" {
		t.Fatal(v)
	}
	if v := shortFile("user.go"); v != "user.go" {
		t.Fatal(v)
	}
}

func where() Location {
	return Caller(0)
}

func whereUp() Location {
	return nested()
}

func nested() Location {
	return Caller(1)
}

func TestCaller(t *testing.T) {
	loc := where()
	_, file, line, _ := runtime.Caller(0)

	if loc.Line != line-1 {
		t.Fatalf("expected line: %v, actual: %v", line-1, loc.Line)
	}
	if !strings.HasSuffix(file, loc.File) || loc.File != "src/src_test.go" {
		t.Fatalf("unexpected file: %v", loc.File)
	}
	if loc.Func != "src.TestCaller" {
		t.Fatalf("unexpected func: %v", loc.Func)
	}
	if loc.String() != "src/src_test.go:"+strconv.Itoa(line-1) {
		t.Fatalf("unexpected string: %v", loc.String())
	}

	up := whereUp()
	_, _, line, _ = runtime.Caller(0)
	if up.Line != line-1 {
		t.Fatalf("expected line: %v, actual: %v", line-1, up.Line)
	}
}

func TestLocationString(t *testing.T) {
	if v := (Location{}).String(); v != "???" {
		t.Fatal(v)
	}
}

func BenchmarkCaller(b *testing.B) {
	for range b.N {
		where()
	}
}
