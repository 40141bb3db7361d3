package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionRefsCalls(t *testing.T) {
	body := `{
		const data = fetchData();
		process(data);
		process(data);
	}`
	refs := NewLexical().FunctionRefs(body)
	assert.Equal(t, []string{"fetchData", "process"}, refs.Calls)
	assert.Empty(t, refs.Instantiates)
}

func TestFunctionRefsStoplist(t *testing.T) {
	body := `{ if (x) { console.log(x); } }`
	refs := NewLexical().FunctionRefs(body)
	assert.Empty(t, refs.Calls, "stoplist names must not become calls")

	body = `{
		for (let i = 0; i < n; i++) {}
		while (busy()) {}
		return typeof(x);
	}`
	refs = NewLexical().FunctionRefs(body)
	assert.Equal(t, []string{"busy"}, refs.Calls)
}

func TestFunctionRefsSkipsMemberAccess(t *testing.T) {
	body := `{
		console.log(x);
		this.save(record);
		db.users.find(id);
		flush();
	}`
	refs := NewLexical().FunctionRefs(body)
	assert.Equal(t, []string{"flush"}, refs.Calls, "qualified calls must not become call candidates")
	assert.Empty(t, refs.Instantiates)
}

func TestFunctionRefsInstantiates(t *testing.T) {
	body := `{
		const repo = new UserRepository(db);
		const copy = new UserRepository(db);
		save(repo);
	}`
	refs := NewLexical().FunctionRefs(body)
	assert.Equal(t, []string{"UserRepository"}, refs.Instantiates)
	assert.Equal(t, []string{"save"}, refs.Calls)
}

func TestClassRefsExtendsFirstMatchWins(t *testing.T) {
	body := `class OrderService extends BaseService {
		nested() { return class X extends Other {}; }
	}`
	refs := NewLexical().ClassRefs(body)
	assert.Equal(t, "BaseService", refs.Extends)
}

func TestClassRefsImplements(t *testing.T) {
	body := `class Cache implements Store, Closeable, Iterable<string> {}`
	refs := NewLexical().ClassRefs(body)
	assert.Equal(t, []string{"Store", "Closeable", "Iterable"}, refs.Implements)
}

func TestClassRefsExtendsAndImplements(t *testing.T) {
	body := `class Repo extends Base implements Reader, Writer { }`
	refs := NewLexical().ClassRefs(body)
	assert.Equal(t, "Base", refs.Extends)
	assert.Equal(t, []string{"Reader", "Writer"}, refs.Implements)
}

func TestClassRefsNone(t *testing.T) {
	refs := NewLexical().ClassRefs(`class Plain { run() {} }`)
	assert.Empty(t, refs.Extends)
	assert.Empty(t, refs.Implements)
}
