package iostore_test

import (
	"context"
	"testing"

	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	cats, err := st.Codes(ctx, schema.Category)
	require.NoError(t, err)
	require.Len(t, cats, 4)
	// sorted by name
	assert.Equal(t, "Braining", cats[0].Name)
	assert.Equal(t, "PhD", cats[3].Name)

	projs, err := st.Codes(ctx, schema.Project)
	require.NoError(t, err)
	assert.Len(t, projs, 10)
}

func TestAddUpdateCode(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	err := st.AddCode(ctx, schema.Category,
		schema.Code{Code: "revw", Name: "Review", Description: "Reviews"})
	require.NoError(t, err)

	err = st.AddCode(ctx, schema.Category,
		schema.Code{Code: "REVW", Name: "Again"})
	assert.Error(t, err)

	tests := []struct {
		msg  string
		code schema.Code
	}{
		{"empty code", schema.Code{Code: " ", Name: "x"}},
		{"empty name", schema.Code{Code: "ABCD"}},
		{"dash", schema.Code{Code: "AB-CD", Name: "x"}},
	}
	for _, v := range tests {
		assert.Error(t, st.AddCode(ctx, schema.Category, v.code), v.msg)
	}

	err = st.UpdateCode(ctx, schema.Category,
		schema.Code{Code: "revw", Name: "Literature review"})
	require.NoError(t, err)

	cats, err := st.Codes(ctx, schema.Category)
	require.NoError(t, err)
	var found bool
	for _, v := range cats {
		if v.Code == "REVW" {
			found = true
			assert.Equal(t, "Literature review", v.Name)
			assert.Empty(t, v.Description)
		}
	}
	assert.True(t, found)

	err = st.UpdateCode(ctx, schema.Project,
		schema.Code{Code: "REVW", Name: "x"})
	assert.True(t, store.IsNotFound(err))
}

func TestDeleteCode(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	fill(t, st)

	// CANG is used by a paper
	err := st.DeleteCode(ctx, schema.Project, "cang")
	assert.True(t, store.IsInUse(err))

	projs, err := st.Codes(ctx, schema.Project)
	require.NoError(t, err)
	assert.Len(t, projs, 10)

	require.NoError(t, st.DeleteCode(ctx, schema.Project, "JOLN"))
	projs, err = st.Codes(ctx, schema.Project)
	require.NoError(t, err)
	assert.Len(t, projs, 9)

	err = st.DeleteCode(ctx, schema.Project, "JOLN")
	assert.True(t, store.IsNotFound(err))
}
