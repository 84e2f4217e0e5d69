package score

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const DefaultPath = "./scores.db"

type DefaultScorer struct {
	Path string

	db *sql.DB
}

func (s *DefaultScorer) Init() error {
	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrap(err, "unable to open score database")
	}

	initStatement := `
	create table if not exists results
	  (
		  id text not null primary key,
		  sum text not null,
		  perfect integer,
		  great integer,
		  bad integer,
		  miss integer,
		  max_combo integer,
		  accuracy real,
		  played_at integer
	  );
	create index if not exists results_sum on results (sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create score tables")
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(r *Result) error {
	_, err := s.db.Exec(
		"insert into results(id, sum, perfect, great, bad, miss, max_combo, accuracy, played_at) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID.String(), r.Sum,
		r.Scoreboard.Perfect, r.Scoreboard.Great, r.Scoreboard.Bad, r.Scoreboard.Miss,
		r.MaxCombo, r.Accuracy, r.PlayedAt.UnixNano(),
	)
	return errors.Wrap(err, "unable to save result")
}

const selectResults = "select id, sum, perfect, great, bad, miss, max_combo, accuracy, played_at from results where sum = ?"

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()
	results := []Result{}
	for rows.Next() {
		var r Result
		var id string
		var playedAt int64
		if err := rows.Scan(&id, &r.Sum,
			&r.Scoreboard.Perfect, &r.Scoreboard.Great, &r.Scoreboard.Bad, &r.Scoreboard.Miss,
			&r.MaxCombo, &r.Accuracy, &playedAt); nil != err {
			return nil, errors.Wrap(err, "unable to scan result")
		}
		parsed, err := uuid.Parse(id)
		if nil != err {
			return nil, errors.Wrapf(err, "bad result id %q", id)
		}
		r.ID = parsed
		r.PlayedAt = time.Unix(0, playedAt)
		results = append(results, r)
	}
	return results, errors.Wrap(rows.Err(), "unable to load results")
}

func (s *DefaultScorer) Load(sum string) ([]Result, error) {
	rows, err := s.db.Query(selectResults+" order by played_at desc", sum)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load results")
	}
	return scanResults(rows)
}

func (s *DefaultScorer) Best(sum string) (*Result, error) {
	rows, err := s.db.Query(selectResults+" order by accuracy desc, played_at asc limit 1", sum)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load best result")
	}
	results, err := scanResults(rows)
	if nil != err || len(results) == 0 {
		return nil, err
	}
	return &results[0], nil
}
