package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Capabilities records which optional corpus tables exist in the
// store. It is probed once at startup; the available tool set is a
// pure function of the schema, so per-call probing (and its failed
// query overhead) is avoided entirely.
type Capabilities struct {
	EUReferences bool
	Definitions  bool
}

// optionalTables maps capability probes to the tables that back them.
var optionalTables = map[string][]string{
	"eu_references": {"eu_documents", "eu_references"},
	"definitions":   {"definitions"},
}

// DetectCapabilities probes information_schema for the optional
// tables. A probe failure disables the capability rather than failing
// startup: a corpus built without EU data is a valid deployment.
func DetectCapabilities(ctx context.Context, db *DB, logger *zap.Logger) Capabilities {
	caps := Capabilities{
		EUReferences: tablesExist(ctx, db, optionalTables["eu_references"], logger),
		Definitions:  tablesExist(ctx, db, optionalTables["definitions"], logger),
	}
	logger.Info("Detected store capabilities",
		zap.Bool("eu_references", caps.EUReferences),
		zap.Bool("definitions", caps.Definitions),
	)
	return caps
}

func tablesExist(ctx context.Context, db *DB, tables []string, logger *zap.Logger) bool {
	for _, table := range tables {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		if err != nil {
			logger.Warn("Capability probe failed; treating feature as unavailable",
				zap.String("table", table),
				zap.Error(err),
			)
			return false
		}
		if !exists {
			return false
		}
	}
	return true
}

// String renders the capability set for startup logging.
func (c Capabilities) String() string {
	return fmt.Sprintf("eu_references=%t definitions=%t", c.EUReferences, c.Definitions)
}
