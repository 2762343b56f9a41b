package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
	"github.com/StorePulse/StorePulse/internal/pkg/oauth"
)

func TestConnectScopeRecordsRequestedScopes(t *testing.T) {
	scope := connectScope()
	require.NotEmpty(t, scope, "a connected credential must never carry an empty scope")

	assert.Equal(t, "email profile "+googlebiz.BusinessScope, scope)

	// The stored string must round-trip back into the scope list the client
	// builder consumes.
	assert.Equal(t, oauth.BusinessScopes, strings.Fields(scope))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "a", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
