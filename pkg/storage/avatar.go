package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// sweepGrace keeps the sweeper away from files that may belong to an
// upload whose row commit has not happened yet.
const sweepGrace = time.Hour

// AvatarStore keeps uploaded avatars in a single media directory.
type AvatarStore struct {
	dir string
}

func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &AvatarStore{dir: dir}, nil
}

func (s *AvatarStore) Dir() string {
	return s.dir
}

// Save writes the upload to a temp file in the media directory and renames
// it into place, so a crash mid-write never leaves a half-written avatar
// under a served name. Returns the stored file name.
func (s *AvatarStore) Save(src io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	name := fmt.Sprintf("avatar-%s%s", uuid.New().String(), ext)
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return name, nil
}

func (s *AvatarStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, name))
}

// Sweep deletes avatar files no user row references anymore. Orphans appear
// when the process dies between a file write and the row commit, or between
// a row update and the old-file removal. Recent files are skipped so an
// in-flight upload is never swept.
func (s *AvatarStore) Sweep(inUse func(name string) (bool, error)) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < sweepGrace {
			continue
		}

		used, err := inUse(entry.Name())
		if err != nil {
			return err
		}
		if used {
			continue
		}

		if err := s.Remove(entry.Name()); err != nil {
			log.WithError(err).WithField("file", entry.Name()).Warn("failed to remove orphan avatar")
			continue
		}
		log.WithField("file", entry.Name()).Info("removed orphan avatar")
	}

	return nil
}

// StartSweeper runs Sweep once and then hourly.
func (s *AvatarStore) StartSweeper(inUse func(name string) (bool, error)) error {
	if err := s.Sweep(inUse); err != nil {
		log.WithError(err).Warn("startup avatar sweep failed")
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.Sweep(inUse); err != nil {
				log.WithError(err).Warn("avatar sweep failed")
			}
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	return nil
}
