package filters_test

import (
	"net/url"
	"testing"

	"github.com/evn/sop_backendl/internal/pkg/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() *filters.Set {
	return filters.NewSet(
		filters.Field{Key: "full_name", Kind: filters.String, Default: ""},
		filters.Field{Key: "team_id", Kind: filters.Int, Default: 0},
		filters.Field{Key: "only_active", Kind: filters.Bool, Default: false},
		filters.Field{Key: "group_ids", Kind: filters.IntList, Default: []int{}},
		filters.Field{Key: "status", Kind: filters.StringList, Default: []string{}},
	)
}

func TestRead_MissingKeysFallBackToDefaults(t *testing.T) {
	state := testSet().Read(url.Values{})

	assert.Equal(t, "", state["full_name"])
	assert.Equal(t, 0, state["team_id"])
	assert.Equal(t, false, state["only_active"])
	assert.Equal(t, []int{}, state["group_ids"])
	assert.Equal(t, []string{}, state["status"])
}

func TestRead_ParsesEachKindWithItsOwnParser(t *testing.T) {
	q := url.Values{}
	q.Set("full_name", "Иванов")
	q.Set("team_id", "7")
	q.Set("only_active", "true")
	q.Set("group_ids", "1,2,3")
	q.Set("status", "pending,approved")

	state := testSet().Read(q)

	assert.Equal(t, "Иванов", state["full_name"])
	assert.Equal(t, 7, state["team_id"])
	assert.Equal(t, true, state["only_active"])
	assert.Equal(t, []int{1, 2, 3}, state["group_ids"])
	assert.Equal(t, []string{"pending", "approved"}, state["status"])
}

func TestRead_UnparsableValuesFallBackToDefaults(t *testing.T) {
	q := url.Values{}
	q.Set("team_id", "abc")
	q.Set("only_active", "да")
	q.Set("group_ids", "1,x,3")

	state := testSet().Read(q)

	assert.Equal(t, 0, state["team_id"])
	assert.Equal(t, false, state["only_active"])
	assert.Equal(t, []int{}, state["group_ids"])
}

func TestWrite_PrunesDefaultAndEmptyValues(t *testing.T) {
	set := testSet()
	q := url.Values{}
	q.Set("team_id", "7")
	q.Set("status", "pending")

	out := set.Write(q, map[string]interface{}{
		"team_id":   0,          // умолчание — ключ уходит
		"full_name": "",         // пустое — ключ не появляется
		"status":    []string{}, // пустой список — ключ уходит
	})

	assert.False(t, out.Has("team_id"))
	assert.False(t, out.Has("full_name"))
	assert.False(t, out.Has("status"))
}

func TestWrite_DoesNotTouchForeignKeys(t *testing.T) {
	set := testSet()
	q := url.Values{}
	q.Set("page", "3")
	q.Set("team_id", "7")

	out := set.Write(q, map[string]interface{}{"team_id": 0})

	assert.Equal(t, "3", out.Get("page"))
	assert.False(t, out.Has("team_id"))
	// исходная форма не меняется
	assert.Equal(t, "7", q.Get("team_id"))
}

func TestWrite_SerializesListsCanonically(t *testing.T) {
	out := testSet().Write(url.Values{}, map[string]interface{}{
		"group_ids": []int{4, 5},
		"status":    []string{"pending"},
	})

	assert.Equal(t, "4,5", out.Get("group_ids"))
	assert.Equal(t, "pending", out.Get("status"))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	set := testSet()
	state := map[string]interface{}{
		"full_name":   "Петров",
		"team_id":     3,
		"only_active": true,
		"group_ids":   []int{1, 2},
		"status":      []string{"pending", "rejected"},
	}

	got := set.Read(set.Write(url.Values{}, state))
	assert.Equal(t, state, got)
}

func TestWrite_Idempotent(t *testing.T) {
	set := testSet()
	q := url.Values{}
	q.Set("team_id", "3")
	q.Set("status", "pending")

	once := set.Write(url.Values{}, set.Read(q))
	twice := set.Write(url.Values{}, set.Read(once))

	assert.Equal(t, once.Encode(), twice.Encode())
}

func TestReset_RemovesOnlyOwnKeys(t *testing.T) {
	set := testSet()
	q := url.Values{}
	q.Set("team_id", "3")
	q.Set("status", "pending")
	q.Set("page", "2")

	out := set.Reset(q)

	assert.False(t, out.Has("team_id"))
	assert.False(t, out.Has("status"))
	assert.Equal(t, "2", out.Get("page"))
}

func TestHasActiveFilters(t *testing.T) {
	set := testSet()

	assert.False(t, set.HasActiveFilters(set.Defaults()))

	state := set.Defaults()
	state["team_id"] = 5
	assert.True(t, set.HasActiveFilters(state))

	state = set.Defaults()
	state["status"] = []string{"pending"}
	assert.True(t, set.HasActiveFilters(state))

	require.False(t, set.HasActiveFilters(map[string]interface{}{}))
}
