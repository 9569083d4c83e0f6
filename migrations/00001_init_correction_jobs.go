package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the correction job ledger
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.

	err := addTables(tx)

	if err == nil {
		err = addIndexes(tx)
	}

	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	return dropTables(tx)
}

func addTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE public.correction_jobs
		(
			id bigserial NOT NULL,
			product_id text COLLATE pg_catalog."default" NOT NULL,
			polarization text COLLATE pg_catalog."default" NOT NULL,
			output_path text COLLATE pg_catalog."default" NOT NULL,
			state text COLLATE pg_catalog."default" NOT NULL,
			error_text text COLLATE pg_catalog."default",
			started_at timestamp without time zone NOT NULL,
			finished_at timestamp without time zone,
			footprint text COLLATE pg_catalog."default",
			CONSTRAINT "correction_jobs_pk_id" PRIMARY KEY (id)
		)
		WITH (
			OIDS = FALSE
		);
		`)

	return err
}

func addIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX idx_correction_jobs_product
		ON public.correction_jobs (product_id);

		CREATE INDEX idx_correction_jobs_started_at
		ON public.correction_jobs (started_at DESC);
		`)

	return err
}

func dropTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP TABLE IF EXISTS public.correction_jobs;
		`)
	return err
}
