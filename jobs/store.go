package jobs

import (
	"database/sql"
	"time"

	"github.com/venicegeo/bf-sar-correct/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// InsertJob records the start of a correction job and returns its ID
func InsertJob(tx *sql.Tx, job CorrectionJob) (int64, error) {
	var footprintJSON interface{}
	if job.Footprint != nil {
		footprintJSON = job.Footprint.String()
	}

	var id int64
	err := tx.QueryRow(`
		INSERT INTO public.correction_jobs
		(product_id, polarization, output_path, state, started_at, footprint)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		job.ProductID, job.Polarization, job.OutputPath, job.State, job.StartedAt, footprintJSON,
	).Scan(&id)
	return id, err
}

// FinishJob records the terminal state of a correction job
func FinishJob(tx *sql.Tx, id int64, state string, errorText string, finishedAt time.Time) error {
	_, err := tx.Exec(`
		UPDATE public.correction_jobs
		SET state=$2, error_text=$3, finished_at=$4
		WHERE id=$1`,
		id, state, errorText, finishedAt,
	)
	return err
}

// GetRecentJobs returns the most recently started jobs, newest first
func GetRecentJobs(tx *sql.Tx, limit int) ([]CorrectionJob, error) {
	rows, err := tx.Query(`
		SELECT id, product_id, polarization, output_path, state,
		       COALESCE(error_text, ''), started_at, COALESCE(finished_at, started_at),
		       COALESCE(footprint, '')
		FROM public.correction_jobs
		ORDER BY started_at DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foundJobs := []CorrectionJob{}
	for rows.Next() {
		job := CorrectionJob{}
		var footprintJSON string
		err = rows.Scan(&job.ID, &job.ProductID, &job.Polarization, &job.OutputPath, &job.State,
			&job.ErrorText, &job.StartedAt, &job.FinishedAt, &footprintJSON)
		if err != nil {
			return nil, err
		}
		if footprintJSON != "" {
			if footprint, parseErr := geojson.PolygonFromBytes([]byte(footprintJSON)); parseErr == nil {
				job.Footprint = footprint
			}
		}
		foundJobs = append(foundJobs, job)
	}
	return foundJobs, rows.Err()
}
