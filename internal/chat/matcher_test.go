package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Search(t *testing.T) {
	m := NewMatcher(NewStore())

	t.Run("matches by question field", func(t *testing.T) {
		results := m.Search("business hours")
		require.Len(t, results, 1)
		assert.Equal(t, "faq_hours", results[0].RecordID())
	})

	t.Run("matches by product feature", func(t *testing.T) {
		results := m.Search("long battery")
		require.Len(t, results, 1)
		assert.Equal(t, "prod_gadget", results[0].RecordID())
	})

	t.Run("case insensitive", func(t *testing.T) {
		results := m.Search("SUPERWIDGET")
		require.Len(t, results, 1)
		assert.Equal(t, "prod_widget", results[0].RecordID())
	})

	t.Run("caps results at three in store order", func(t *testing.T) {
		// "support" appears in faq_contact, serv_support, and more.
		results := m.Search("s")
		require.Len(t, results, 3)
		assert.Equal(t, "faq_hours", results[0].RecordID())
		assert.Equal(t, "faq_password", results[1].RecordID())
		assert.Equal(t, "faq_contact", results[2].RecordID())
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		assert.Empty(t, m.Search(""))
	})

	t.Run("whitespace query returns nothing", func(t *testing.T) {
		assert.Empty(t, m.Search("   \t "))
	})

	t.Run("no match returns nothing", func(t *testing.T) {
		assert.Empty(t, m.Search("quantum entanglement"))
	})

	t.Run("idempotent", func(t *testing.T) {
		first := m.Search("refund")
		second := m.Search("refund")
		require.Len(t, first, 1)
		assert.Equal(t, "pol_return", first[0].RecordID())
		assert.Equal(t, first, second)
	})
}

func TestMatcher_EveryResultContainsQuery(t *testing.T) {
	m := NewMatcher(NewStore())

	for _, query := range []string{"support", "widget", "password", "return"} {
		for _, rec := range m.Search(query) {
			found := false
			for _, field := range rec.searchFields() {
				if strings.Contains(strings.ToLower(field), query) {
					found = true
					break
				}
			}
			assert.True(t, found, "record %s matched %q without containing it", rec.RecordID(), query)
		}
	}
}

func TestStore_SeedRecords(t *testing.T) {
	store := NewStore()
	records := store.All()
	require.Len(t, records, 7)

	kinds := map[RecordKind]int{}
	for _, rec := range records {
		kinds[rec.Kind()]++
	}
	assert.Equal(t, 3, kinds[RecordFAQ])
	assert.Equal(t, 2, kinds[RecordProduct])
	assert.Equal(t, 1, kinds[RecordService])
	assert.Equal(t, 1, kinds[RecordPolicy])
}
