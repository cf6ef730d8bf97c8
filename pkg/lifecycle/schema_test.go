package lifecycle_test

import (
	"testing"

	"github.com/gnames/papersdb/internal/iorename"
	"github.com/gnames/papersdb/internal/ioschema"
	"github.com/gnames/papersdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestSchemaManagerContract ensures that the ioschema manager
// satisfies the lifecycle.SchemaManager interface.
func TestSchemaManagerContract(t *testing.T) {
	var sm lifecycle.SchemaManager = ioschema.NewManager(nil)
	assert.NotNil(t, sm)
}

// TestRenamerContract ensures that the iorename driver satisfies the
// lifecycle.Renamer interface.
func TestRenamerContract(t *testing.T) {
	var r lifecycle.Renamer = iorename.New(nil, nil, nil)
	assert.NotNil(t, r)
}
