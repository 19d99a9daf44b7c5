package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ozscout/scoutql/internal/model"
)

// vocabFile is the on-disk vocabulary format:
//
//	entries:
//	  - canonical: richmond
//	    category: team
//	    aliases: [tigers]
//	  - canonical: goal_accuracy
//	    category: statistic
//	    aliases: [accuracy, kicking accuracy]
//	    unit: "%"
type vocabFile struct {
	Entries []model.VocabularyEntry `yaml:"entries"`
}

// Load builds a store from a YAML vocabulary file
func Load(path string, maxEditRatio float64) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var file vocabFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("vocabulary %s: no entries", path)
	}

	store, err := New(file.Entries, maxEditRatio)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	return store, nil
}
