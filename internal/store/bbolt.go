package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kilupskalvis/git-travel/internal/models"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names used by the bbolt driver.
//
//	projects/<project>/current-branch
//	projects/<project>/branches/<branch>/commits  newline-delimited, newest first
//	projects/<project>/branches/<branch>/head
var (
	bucketProjects = []byte("projects")
	bucketBranches = []byte("branches")

	keyCurrentBranch = []byte("current-branch")
	keyCommits       = []byte("commits")
	keyHead          = []byte("head")
)

// BoltStore is the bbolt implementation of Backend.
type BoltStore struct {
	db *bolt.DB
}

var _ Backend = (*BoltStore)(nil)

// OpenBolt opens or creates a bbolt database at the given path.
// A second process holding the file makes Open fail after one second.
func OpenBolt(dbPath string) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketProjects); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucketProjects, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// View runs fn in a read-only transaction.
func (s *BoltStore) View(fn func(tx Tx) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

// Update runs fn in a read-write transaction.
func (s *BoltStore) Update(fn func(tx Tx) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
}

type boltTx struct {
	tx *bolt.Tx
}

// project returns the bucket of a project, creating it in writable
// transactions. It returns nil for a missing project in read-only ones.
func (t *boltTx) project(name string) (*bolt.Bucket, error) {
	projects := t.tx.Bucket(bucketProjects)
	if projects == nil {
		return nil, fmt.Errorf("projects bucket not found")
	}
	if !t.tx.Writable() {
		return projects.Bucket([]byte(name)), nil
	}
	return projects.CreateBucketIfNotExists([]byte(name))
}

func (t *boltTx) CurrentBranch(project string) (string, error) {
	b, err := t.project(project)
	if err != nil || b == nil {
		return "", err
	}
	return string(b.Get(keyCurrentBranch)), nil
}

func (t *boltTx) SetCurrentBranch(project, branch string) error {
	b, err := t.project(project)
	if err != nil {
		return err
	}
	return b.Put(keyCurrentBranch, []byte(branch))
}

func (t *boltTx) BranchLog(project, branch string) (*models.BranchLog, error) {
	b, err := t.project(project)
	if err != nil || b == nil {
		return nil, err
	}
	branches := b.Bucket(bucketBranches)
	if branches == nil {
		return nil, nil
	}
	bb := branches.Bucket([]byte(branch))
	if bb == nil {
		return nil, nil
	}

	return &models.BranchLog{
		Project: project,
		Branch:  branch,
		Commits: splitLines(string(bb.Get(keyCommits))),
		Head:    string(bb.Get(keyHead)),
	}, nil
}

func (t *boltTx) PutBranchLog(log *models.BranchLog) error {
	b, err := t.project(log.Project)
	if err != nil {
		return err
	}
	branches, err := b.CreateBucketIfNotExists(bucketBranches)
	if err != nil {
		return fmt.Errorf("create branches bucket: %w", err)
	}
	bb, err := branches.CreateBucketIfNotExists([]byte(log.Branch))
	if err != nil {
		return fmt.Errorf("create branch bucket %s: %w", log.Branch, err)
	}

	if err := bb.Put(keyCommits, []byte(joinLines(log.Commits))); err != nil {
		return fmt.Errorf("write commits: %w", err)
	}
	if err := bb.Put(keyHead, []byte(log.Head)); err != nil {
		return fmt.Errorf("write head: %w", err)
	}
	return nil
}

func (t *boltTx) Branches(project string) ([]string, error) {
	b, err := t.project(project)
	if err != nil || b == nil {
		return nil, err
	}
	branches := b.Bucket(bucketBranches)
	if branches == nil {
		return nil, nil
	}

	var names []string
	err = branches.ForEach(func(k, v []byte) error {
		// Nested buckets have a nil value.
		if v == nil {
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// splitLines is the inverse of joinLines; blank lines are dropped.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
