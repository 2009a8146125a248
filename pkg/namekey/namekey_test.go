// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package namekey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kessen/pkg/namekey"
)

/*
TestFrom_CaseAndWhitespace verifies lowercasing and whitespace collapsing.
*/
func TestFrom_CaseAndWhitespace(t *testing.T) {
	assert.Equal(t, "edward elric", namekey.From("Edward  Elric"))
	assert.Equal(t, "edward elric", namekey.From("  edward ELRIC \t"))
}

/*
TestFrom_Accents verifies that accented and plain spellings share a key.
*/
func TestFrom_Accents(t *testing.T) {
	assert.Equal(t, namekey.From("Edward Elric"), namekey.From("Édward Elric"))
	assert.Equal(t, "pokemon", namekey.From("Pokémon"))
}

/*
TestFrom_Empty verifies the degenerate inputs.
*/
func TestFrom_Empty(t *testing.T) {
	assert.Equal(t, "", namekey.From(""))
	assert.Equal(t, "", namekey.From("   "))
}
