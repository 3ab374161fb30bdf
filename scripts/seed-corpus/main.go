// seed-corpus loads a small sample corpus into the database for local
// development: two statutes with a handful of provisions, one EU
// instrument with cross-references, and the corpus build timestamp.
//
// The real corpus is produced by the ingestion pipeline; this seed only
// exists so the MCP tools have something to answer with on a fresh
// local database.
//
// Usage: go run ./scripts/seed-corpus
//
// Database connection: uses the standard PG* environment variables.
//
// Flags:
//
//	-dry-run   Print what would be inserted without writing (default: false)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

type document struct {
	id           string
	title        string
	titleEN      string
	abbreviation string
	status       string
	issued       string
	inForce      string
}

type provision struct {
	documentID string
	ref        string
	section    string
	title      string
	content    string
}

var documents = []document{
	{
		id:           "sr-235-1",
		title:        "Bundesgesetz über den Datenschutz",
		titleEN:      "Federal Act on Data Protection",
		abbreviation: "DSG",
		status:       "in_force",
		issued:       "2020-09-25",
		inForce:      "2023-09-01",
	},
	{
		id:           "sr-220",
		title:        "Bundesgesetz betreffend die Ergänzung des Schweizerischen Zivilgesetzbuches (Fünfter Teil: Obligationenrecht)",
		titleEN:      "Federal Act on the Amendment of the Swiss Civil Code (Part Five: The Code of Obligations)",
		abbreviation: "OR",
		status:       "in_force",
		issued:       "1911-03-30",
		inForce:      "1912-01-01",
	},
}

var provisions = []provision{
	{
		documentID: "sr-235-1", ref: "art5", section: "1. Kapitel", title: "Begriffe",
		content: "In diesem Gesetz bedeuten: a. Personendaten: alle Angaben, die sich auf eine bestimmte oder bestimmbare natürliche Person beziehen.",
	},
	{
		documentID: "sr-235-1", ref: "art6", section: "2. Kapitel", title: "Grundsätze",
		content: "Personendaten müssen rechtmässig bearbeitet werden. Ihre Bearbeitung muss nach Treu und Glauben erfolgen und verhältnismässig sein.",
	},
	{
		documentID: "sr-235-1", ref: "art25", section: "4. Kapitel", title: "Auskunftsrecht",
		content: "Jede Person kann von der Verantwortlichen oder vom Verantwortlichen Auskunft darüber verlangen, ob Personendaten über sie bearbeitet werden.",
	},
	{
		documentID: "sr-220", ref: "art41", section: "Zweiter Abschnitt", title: "Haftung im Allgemeinen",
		content: "Wer einem andern widerrechtlich Schaden zufügt, sei es mit Absicht, sei es aus Fahrlässigkeit, wird ihm zum Ersatze verpflichtet.",
	},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "print what would be inserted without writing")
	flag.Parse()

	if *dryRun {
		for _, d := range documents {
			fmt.Printf("document %s (%s)\n", d.id, d.abbreviation)
		}
		for _, p := range provisions {
			fmt.Printf("provision %s %s\n", p.documentID, p.ref)
		}
		fmt.Println("eu_document regulation-2016-679 + 2 references")
		return
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := seed(ctx, conn); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("seeded sample corpus")
}

func seed(ctx context.Context, conn *pgx.Conn) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, d := range documents {
		_, err := tx.Exec(ctx, `
			INSERT INTO legal_documents (id, title, title_en, abbreviation, status, issued_date, in_force_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			d.id, d.title, d.titleEN, d.abbreviation, d.status, d.issued, d.inForce)
		if err != nil {
			return fmt.Errorf("document %s: %w", d.id, err)
		}
	}

	for _, p := range provisions {
		_, err := tx.Exec(ctx, `
			INSERT INTO legal_provisions (document_id, provision_ref, section, title, content)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (document_id, provision_ref) DO NOTHING`,
			p.documentID, p.ref, p.section, p.title, p.content)
		if err != nil {
			return fmt.Errorf("provision %s %s: %w", p.documentID, p.ref, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO eu_documents (id, title, type, year, number)
		VALUES ('regulation-2016-679', 'General Data Protection Regulation', 'regulation', 2016, '679')
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("eu document: %w", err)
	}

	// eu_references has no natural key, so reseed by replacement to
	// keep the script idempotent.
	_, err = tx.Exec(ctx, `DELETE FROM eu_references WHERE swiss_document_id = 'sr-235-1'`)
	if err != nil {
		return fmt.Errorf("eu references cleanup: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO eu_references (swiss_document_id, provision_ref, eu_document_id, reference_type, detail)
		VALUES
			('sr-235-1', NULL, 'regulation-2016-679', 'aligns_with', 'Revision aligned with the GDPR'),
			('sr-235-1', 'art25', 'regulation-2016-679', 'aligns_with', 'Access right mirrors GDPR Art. 15')`)
	if err != nil {
		return fmt.Errorf("eu references: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO corpus_metadata (key, value)
		VALUES ('built_at', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("metadata: %w", err)
	}

	return tx.Commit(ctx)
}
