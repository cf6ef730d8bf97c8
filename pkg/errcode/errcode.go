package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Store errors
	StoreConnectionError
	StoreNotFoundError
	StoreNotConnectedError
	StoreEmptyError
	StoreQueryError
	StoreUnknownColumnError
	StoreLockError
	StoreTableCheckError
	StoreDropTableError

	// Record errors
	RecordNotFoundError
	RecordCreateError
	RecordUpdateError
	RecordDeleteError
	RecordMissingTitleError

	// Vocabulary errors
	CodeNotFoundError
	CodeExistsError
	CodeInUseError
	CodeInvalidError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError
	SchemaFTSError
	SchemaSeedError

	// Naming errors
	NamingSchemeError
	NamingKeyError

	// Artifact errors
	ArtifactRootError
	ArtifactNotFoundError
	ArtifactExistsError
	ArtifactRenameError
	ArtifactCopyError

	// Rename driver errors
	RenameBackupError
	RenameNoRecordsError
)
