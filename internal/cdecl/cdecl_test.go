package cdecl

import (
	"strings"
	"sync"
	"testing"

	"cdeclgen/internal/config"
	"cdeclgen/internal/model"
	"cdeclgen/internal/writer"
)

var (
	intT   = model.Primitive{Name: "int"}
	charT  = model.Primitive{Name: "char"}
	voidT  = model.Primitive{Name: "void"}
	floatT = model.Primitive{Name: "float"}
)

func ptr(inner model.Type) model.Pointer {
	return model.Pointer{Inner: inner, IsNullable: true}
}

func cfgFor(lang config.Language) *config.Config {
	cfg := config.New()
	cfg.Language = lang
	return cfg
}

var fieldTests = []struct {
	name string
	typ  model.Type
	want string
}{
	{"primitive", intT, "int x"},
	{"pointer", ptr(intT), "int *x"},
	{"pointer to array", ptr(model.Array{Inner: intT, Len: "4"}), "int (*x)[4]"},
	{"array of pointers", model.Array{Inner: ptr(intT), Len: "4"}, "int *x[4]"},
	{"two dimensional array", model.Array{Inner: model.Array{Inner: intT, Len: "3"}, Len: "2"}, "int x[2][3]"},
	{"pointer to pointer to array", ptr(ptr(model.Array{Inner: intT, Len: "N"})), "int (**x)[N]"},
	{"array length kept verbatim", model.Array{Inner: charT, Len: "MAX_LEN + 1"}, "char x[MAX_LEN + 1]"},
	{"pointer to const", model.Pointer{Inner: intT, IsConst: true, IsNullable: true}, "const int *x"},
	{
		"const pointer to pointer to const",
		model.Pointer{
			Inner:      model.Pointer{Inner: charT, IsConst: true, IsNullable: true},
			IsConst:    true,
			IsNullable: true,
		},
		"const char *const *x",
	},
	{"array of const keeps constness", model.Pointer{Inner: model.Array{Inner: intT, Len: "2"}, IsConst: true, IsNullable: true}, "const int (*x)[2]"},
	{"function pointer", model.FuncPtr{Ret: voidT, Args: []model.FuncPtrArg{{Type: intT}}}, "void (*x)(int)"},
	{
		"function pointer with named args",
		model.FuncPtr{Ret: ptr(charT), Args: []model.FuncPtrArg{{Name: "len", Type: intT}, {Name: "data", Type: ptr(voidT)}}},
		"char *(*x)(int len, void *data)",
	},
	{
		"array of function pointers",
		model.Array{Inner: model.FuncPtr{Ret: voidT, Args: []model.FuncPtrArg{{Type: intT}}}, Len: "3"},
		"void (*x[3])(int)",
	},
	{
		"pointer to function pointer",
		ptr(model.FuncPtr{Ret: intT, Args: []model.FuncPtrArg{{Type: floatT}}}),
		"int (**x)(float)",
	},
	{
		"function pointer returning function pointer",
		model.FuncPtr{Ret: model.FuncPtr{Ret: intT, Args: []model.FuncPtrArg{{Type: charT}}}, Args: []model.FuncPtrArg{{Type: floatT}}},
		"int (*(*x)(float))(char)",
	},
	{"tagged path", model.Path{Name: "Point", Tag: model.DeclStruct}, "struct Point x"},
	{"pointer to tagged path", ptr(model.Path{Name: "Node", Tag: model.DeclUnion}), "union Node *x"},
	{
		"generic path",
		model.Path{Name: "Pair", Generics: []model.Type{intT, ptr(model.Path{Name: "Foo", Tag: model.DeclStruct})}},
		"Pair<int, struct Foo*> x",
	},
	{"reference", model.Pointer{Inner: intT, IsRef: true}, "int &x"},
}

func TestWriteField(t *testing.T) {
	cfg := cfgFor(config.LanguageCxx)
	for _, tt := range fieldTests {
		got := FieldString(tt.typ, "x", cfg)
		if got != tt.want {
			t.Errorf("%s: FieldString = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteType(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	tests := []struct {
		typ  model.Type
		want string
	}{
		{intT, "int"},
		{ptr(intT), "int*"},
		{ptr(model.Array{Inner: intT, Len: "4"}), "int(*)[4]"},
		{model.Array{Inner: ptr(intT), Len: "4"}, "int*[4]"},
		{model.FuncPtr{Ret: voidT}, "void(*)(void)"},
		{model.Path{Name: "Vec", Generics: []model.Type{model.Path{Name: "Vec", Generics: []model.Type{intT}}}}, "Vec<Vec<int>>"},
	}
	for _, tt := range tests {
		got := TypeString(tt.typ, cfg)
		if got != tt.want {
			t.Errorf("TypeString(%#v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestConstField(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	tests := []struct {
		typ  model.Type
		want string
	}{
		{intT, "const int x"},
		{ptr(intT), "int *const x"},
		{model.Array{Inner: intT, Len: "4"}, "const int x[4]"},
		{model.Path{Name: "Point", Tag: model.DeclStruct}, "const struct Point x"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		WriteConstField(writer.New(&sb), tt.typ, "x", cfg)
		if got := sb.String(); got != tt.want {
			t.Errorf("WriteConstField(%#v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestEmptyParameterList(t *testing.T) {
	fp := model.FuncPtr{Ret: voidT}
	if got, want := FieldString(fp, "f", cfgFor(config.LanguageC)), "void (*f)(void)"; got != want {
		t.Errorf("C: got %q, want %q", got, want)
	}
	if got, want := FieldString(fp, "f", cfgFor(config.LanguageCxx)), "void (*f)()"; got != want {
		t.Errorf("C++: got %q, want %q", got, want)
	}

	fn := &model.Function{Name: "init", Ret: intT}
	if got, want := FuncString(fn, false, cfgFor(config.LanguageC)), "int init(void)"; got != want {
		t.Errorf("C: got %q, want %q", got, want)
	}
	if got, want := FuncString(fn, true, cfgFor(config.LanguageCxx)), "int init()"; got != want {
		t.Errorf("C++: got %q, want %q", got, want)
	}
}

func TestNonNullAttribute(t *testing.T) {
	cfg := cfgFor(config.LanguageCxx)
	cfg.Pointer.NonNullAttribute = "NONNULL"

	tests := []struct {
		name  string
		typ   model.Type
		ident string
		want  string
	}{
		{"non-nullable", model.Pointer{Inner: intT}, "x", "int *NONNULL x"},
		{"nullable", model.Pointer{Inner: intT, IsNullable: true}, "x", "int *x"},
		{"reference", model.Pointer{Inner: intT, IsRef: true}, "x", "int &x"},
		{"nullable reference", model.Pointer{Inner: intT, IsRef: true, IsNullable: true}, "x", "int &x"},
		{"bare type", model.Pointer{Inner: charT}, "", "char*NONNULL "},
		{"function pointer is nullable", model.FuncPtr{Ret: voidT}, "cb", "void (*cb)()"},
		{
			"only the non-nullable level",
			model.Pointer{Inner: model.Pointer{Inner: charT, IsNullable: true}},
			"argv",
			"char **NONNULL argv",
		},
	}
	for _, tt := range tests {
		if got := FieldString(tt.typ, tt.ident, cfg); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}

	var sb strings.Builder
	WriteConstField(writer.New(&sb), model.Pointer{Inner: intT}, "x", cfg)
	if got, want := sb.String(), "int *const x"; got != want {
		t.Errorf("const non-nullable: got %q, want %q", got, want)
	}
}

func TestWriteFunc(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	tests := []struct {
		name string
		fn   model.Function
		want string
	}{
		{
			"simple",
			model.Function{Name: "add", Args: []model.FunctionArg{{Name: "a", Type: intT}, {Name: "b", Type: intT}}, Ret: intT},
			"int add(int a, int b)",
		},
		{
			"returns pointer",
			model.Function{Name: "name", Args: []model.FunctionArg{{Name: "p", Type: ptr(model.Path{Name: "Person"})}}, Ret: model.Pointer{Inner: charT, IsConst: true, IsNullable: true}},
			"const char *name(Person *p)",
		},
		{
			"returns pointer to array",
			model.Function{Name: "row", Ret: ptr(model.Array{Inner: floatT, Len: "4"})},
			"float (*row(void))[4]",
		},
		{
			"returns function pointer",
			model.Function{
				Name: "lookup",
				Args: []model.FunctionArg{{Name: "key", Type: ptr(charT)}},
				Ret:  model.FuncPtr{Ret: intT, Args: []model.FuncPtrArg{{Type: intT}}},
			},
			"int (*lookup(char *key))(int)",
		},
		{
			"takes function pointer",
			model.Function{
				Name: "register_cb",
				Args: []model.FunctionArg{{Name: "cb", Type: model.FuncPtr{Ret: voidT, Args: []model.FuncPtrArg{{Name: "data", Type: ptr(voidT)}}}}},
				Ret:  voidT,
			},
			"void register_cb(void (*cb)(void *data))",
		},
	}
	for _, tt := range tests {
		if got := FuncString(&tt.fn, false, cfg); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteFuncVertical(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	fn := &model.Function{
		Name: "foo",
		Args: []model.FunctionArg{
			{Name: "a", Type: intT},
			{Name: "b", Type: ptr(charT)},
			{Name: "c", Type: floatT},
		},
		Ret: voidT,
	}
	want := "void foo(int a,\n" +
		"         char *b,\n" +
		"         float c)"
	if got := FuncString(fn, true, cfg); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	// The alignment column is taken from wherever the writer is.
	var sb strings.Builder
	w := writer.New(&sb)
	w.PushTab()
	w.Write("extern ")
	WriteFunc(w, fn, true, cfg)
	w.PopTab()
	want = "  extern void foo(int a,\n" +
		"                  char *b,\n" +
		"                  float c)"
	if got := sb.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestVerticalOnlyAppliesToOuterFunction(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	fn := &model.Function{
		Name: "each",
		Args: []model.FunctionArg{
			{Name: "cb", Type: model.FuncPtr{Ret: voidT, Args: []model.FuncPtrArg{{Type: intT}, {Type: intT}}}},
			{Name: "n", Type: intT},
		},
		Ret: voidT,
	}
	want := "void each(void (*cb)(int, int),\n" +
		"          int n)"
	if got := FuncString(fn, true, cfg); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestBuildDeclaratorOrder(t *testing.T) {
	d := FromType(ptr(model.Array{Inner: model.FuncPtr{Ret: intT}, Len: "2"}), false)
	want := []string{"ptr", "array", "ptr", "func"}
	if len(d.declarators) != len(want) {
		t.Fatalf("got %d declarators, want %d", len(d.declarators), len(want))
	}
	for i, dc := range d.declarators {
		var kind string
		switch dc.(type) {
		case ptrDeclarator:
			kind = "ptr"
		case arrayDeclarator:
			kind = "array"
		case funcDeclarator:
			kind = "func"
		}
		if kind != want[i] {
			t.Errorf("declarators[%d] = %s, want %s", i, kind, want[i])
		}
	}
	if d.terminal.name != "int" {
		t.Errorf("terminal = %q, want int", d.terminal.name)
	}
}

func TestBuildKeepsEmptyArgs(t *testing.T) {
	d := FromFunc(&model.Function{Name: "f", Args: []model.FunctionArg{}, Ret: voidT}, false)
	fd, ok := d.declarators[0].(funcDeclarator)
	if !ok {
		t.Fatalf("declarators[0] is %T, want funcDeclarator", d.declarators[0])
	}
	if fd.args == nil || len(fd.args) != 0 {
		t.Errorf("args = %#v, want empty list", fd.args)
	}
}

func TestMalformedTreePanics(t *testing.T) {
	tests := []struct {
		name string
		typ  model.Type
	}{
		{"nil", nil},
		{"pointer without pointee", model.Pointer{}},
		{"array without element", model.Array{Len: "1"}},
		{"function pointer without return", model.FuncPtr{}},
	}
	for _, tt := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: FromType did not panic", tt.name)
				}
			}()
			FromType(tt.typ, false)
		}()
	}
}

func TestIdempotent(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	cfg.Pointer.NonNullAttribute = "_Nonnull"
	newFn := func() *model.Function {
		return &model.Function{
			Name: "visit",
			Args: []model.FunctionArg{
				{Name: "tree", Type: model.Pointer{Inner: model.Path{Name: "Tree", Tag: model.DeclStruct}, IsConst: true}},
				{Name: "cb", Type: model.FuncPtr{Ret: model.Primitive{Name: "bool"}, Args: []model.FuncPtrArg{{Name: "node", Type: ptr(model.Path{Name: "Node"})}}}},
			},
			Ret: model.Array{Inner: intT, Len: "2"},
		}
	}
	first := FuncString(newFn(), true, cfg)
	second := FuncString(newFn(), true, cfg)
	if first != second {
		t.Errorf("output differs:\n%s\n%s", first, second)
	}
}

func TestConcurrentRendering(t *testing.T) {
	cfg := cfgFor(config.LanguageC)
	want := "int (*x)[4]"
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := FieldString(ptr(model.Array{Inner: intT, Len: "4"}), "x", cfg); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("got %q, want %q", got, want)
	}
}
