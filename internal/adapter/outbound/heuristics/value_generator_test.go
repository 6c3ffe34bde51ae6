package heuristics

import (
	"math"
	"testing"

	"testsmith/internal/domain/valueobject"

	"github.com/stretchr/testify/assert"
)

func TestValueFor(t *testing.T) {
	generator := NewValueGenerator()

	tests := []struct {
		name     string
		expected any
	}{
		{"id", 1},
		{"index", 1},
		{"rowCount", 1},
		{"age", 25},
		{"birthYear", 25},
		{"price", 100.50},
		{"totalAmount", 100.50},
		{"name", "Test Name"},
		{"jobTitle", "Test Name"},
		{"email", "test@example.com"},
		{"url", "https://example.com"},
		{"permalink", "https://example.com"},
		{"password", "SecurePass123!"},
		{"isActive", true},
		{"hasChildren", true},
		{"canEdit", true},
		{"array", []any{"item1", "item2"}},
		{"items", []any{"item1", "item2"}},
		{"user", map[string]any{"id": 1, "name": "Test User"}},
		{"person", map[string]any{"id": 1, "name": "Test User"}},
		{"config", map[string]any{"enabled": true, "timeout": 1000}},
		{"options", map[string]any{"enabled": true, "timeout": 1000}},
		{"x", "testValue"},
		{"payload", "testValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generator.ValueFor(tt.name))
		})
	}
}

func TestValueFor_CaseInsensitive(t *testing.T) {
	generator := NewValueGenerator()

	assert.Equal(t, "test@example.com", generator.ValueFor("Email"))
	assert.Equal(t, "test@example.com", generator.ValueFor("USER_EMAIL"))
	assert.Equal(t, true, generator.ValueFor("IsReady"))
}

func TestValueFor_EarlierRuleWinsTies(t *testing.T) {
	generator := NewValueGenerator()

	// Matches both the id rule and the user rule; the id rule is checked first.
	assert.Equal(t, 1, generator.ValueFor("userId"))
	// Matches both the name rule and the user rule; the name rule is checked first.
	assert.Equal(t, "Test Name", generator.ValueFor("userName"))
	// "pageTitle" contains "age", which is checked before name/title.
	assert.Equal(t, 25, generator.ValueFor("pageTitle"))
	// Every name containing "list" also contains "is", so the boolean rule
	// shadows the collection rule for it.
	assert.Equal(t, true, generator.ValueFor("list"))
}

func TestQualityValueFor(t *testing.T) {
	generator := NewValueGenerator()

	tests := []struct {
		name     string
		expected any
	}{
		{"email", "user@example.com"},
		{"contactEmail", "user@example.com"},
		{"phone", "+15551234567"},
		{"date", "2024-01-15"},
		{"createdDate", "2024-01-15"},
		{"url", "https://example.com/resource"},
		{"link", "https://example.com/resource"},
		{"name", "Valid Name"},
		{"payload", "validValue"},
		{"x", "validValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generator.QualityValueFor(tt.name))
		})
	}
}

func TestInvalidValueAt(t *testing.T) {
	generator := NewValueGenerator()

	assert.Nil(t, generator.InvalidValueAt(0))
	assert.Equal(t, valueobject.UndefinedValue{}, generator.InvalidValueAt(1))
	assert.Equal(t, "", generator.InvalidValueAt(2))
	assert.Equal(t, 0, generator.InvalidValueAt(3))
	assert.Equal(t, -1, generator.InvalidValueAt(4))

	nan, ok := generator.InvalidValueAt(5).(float64)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(nan))

	assert.Equal(t, map[string]any{}, generator.InvalidValueAt(6))
	assert.Equal(t, []any{}, generator.InvalidValueAt(7))
	assert.Equal(t, false, generator.InvalidValueAt(8))
}

func TestInvalidValueAt_WrapsAround(t *testing.T) {
	generator := NewValueGenerator()

	assert.Nil(t, generator.InvalidValueAt(9))
	assert.Equal(t, valueobject.UndefinedValue{}, generator.InvalidValueAt(10))
}

func TestInvalidValueAt_NegativeIndex(t *testing.T) {
	generator := NewValueGenerator()

	assert.Nil(t, generator.InvalidValueAt(-3))
}

func TestValueFor_ReturnsFreshCollections(t *testing.T) {
	generator := NewValueGenerator()

	first, ok := generator.ValueFor("config").(map[string]any)
	assert.True(t, ok)
	first["enabled"] = false

	second := generator.ValueFor("config")
	assert.Equal(t, map[string]any{"enabled": true, "timeout": 1000}, second)
}
