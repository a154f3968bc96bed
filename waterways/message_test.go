package waterways

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessageSingular(t *testing.T) {
	got := FormatMessage([]string{"Spree"})
	assert.Equal(t, "Crossed 1 waterway 🏞️ Spree 🌐 Powered by Kreuzungen World 🗺️", got)
}

func TestFormatMessagePlural(t *testing.T) {
	got := FormatMessage([]string{"Spree", "Landwehrkanal"})
	assert.Equal(t, "Crossed 2 waterways 🏞️ Spree | Landwehrkanal 🌐 Powered by Kreuzungen World 🗺️", got)
}

func TestContainsMessageDetectsOwnOutput(t *testing.T) {
	for _, names := range [][]string{
		{"Spree"},
		{"Spree", "Landwehrkanal"},
		{"Rio Grande", "Río de la Plata", "Donau"},
	} {
		msg := FormatMessage(names)
		assert.True(t, ContainsMessage(msg), msg)
		assert.True(t, ContainsMessage("Morning ride\n\n"+msg))
	}
}

func TestContainsMessageIgnoresOtherText(t *testing.T) {
	assert.False(t, ContainsMessage(""))
	assert.False(t, ContainsMessage("Morning ride along the Spree"))
	assert.False(t, ContainsMessage("Crossed 2 waterways but no suffix"))
}

func TestRemoveMessageStripsOwnOutput(t *testing.T) {
	msg := FormatMessage([]string{"Spree", "Landwehrkanal"})

	assert.Equal(t, "", RemoveMessage(msg))
	assert.Equal(t, "Morning ride", RemoveMessage("Morning ride\n\n"+msg))
	assert.Equal(t, "Morning ride", RemoveMessage("Morning ride\n\n"+msg+"\n"))
}

func TestRemoveMessageLeavesOtherTextAlone(t *testing.T) {
	assert.Equal(t, "Morning ride", RemoveMessage("Morning ride"))
}

func TestAppendOrUpdateEmptyDescription(t *testing.T) {
	msg := FormatMessage([]string{"Spree"})
	assert.Equal(t, msg, AppendOrUpdate("", msg))
	assert.Equal(t, msg, AppendOrUpdate("  \n ", msg))
}

func TestAppendOrUpdateAppends(t *testing.T) {
	msg := FormatMessage([]string{"Spree"})
	assert.Equal(t, "Morning ride\n\n"+msg, AppendOrUpdate("Morning ride", msg))
}

func TestAppendOrUpdateReplacesStaleMessage(t *testing.T) {
	old := FormatMessage([]string{"Spree"})
	fresh := FormatMessage([]string{"Spree", "Landwehrkanal"})

	got := AppendOrUpdate("Morning ride\n\n"+old, fresh)
	assert.Equal(t, "Morning ride\n\n"+fresh, got)

	got = AppendOrUpdate(old, fresh)
	assert.Equal(t, fresh, got)
}

func TestAppendOrUpdateIsIdempotent(t *testing.T) {
	msg := FormatMessage([]string{"Spree", "Landwehrkanal"})

	desc := "Morning ride"
	for i := 0; i < 3; i++ {
		desc = AppendOrUpdate(desc, msg)
	}
	assert.Equal(t, "Morning ride\n\n"+msg, desc)
	assert.Equal(t, 1, strings.Count(desc, "Crossed"))
}
