package trainer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/ZanzyTHEbar/trainvocab/trainvocab/pretokenizer"
)

// formatVersion is the tokenizer.json layout version written to disk.
const formatVersion = "1.0"

// document mirrors the HuggingFace tokenizer.json layout.
type document struct {
	Version       string           `json:"version"`
	Truncation    any              `json:"truncation"`
	Padding       any              `json:"padding"`
	AddedTokens   []addedTokenDoc  `json:"added_tokens"`
	Normalizer    normalizerDoc    `json:"normalizer"`
	PreTokenizer  typeDoc          `json:"pre_tokenizer"`
	PostProcessor postProcessorDoc `json:"post_processor"`
	Decoder       decoderDoc       `json:"decoder"`
	Model         modelDoc         `json:"model"`
}

type addedTokenDoc struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	SingleWord bool   `json:"single_word"`
	Lstrip     bool   `json:"lstrip"`
	Rstrip     bool   `json:"rstrip"`
	Normalized bool   `json:"normalized"`
	Special    bool   `json:"special"`
}

type typeDoc struct {
	Type string `json:"type"`
}

type normalizerDoc struct {
	Type               string `json:"type"`
	CleanText          bool   `json:"clean_text"`
	HandleChineseChars bool   `json:"handle_chinese_chars"`
	StripAccents       bool   `json:"strip_accents"`
	Lowercase          bool   `json:"lowercase"`
}

type postProcessorDoc struct {
	Type string `json:"type"`
	Sep  [2]any `json:"sep"`
	Cls  [2]any `json:"cls"`
}

type decoderDoc struct {
	Type    string `json:"type"`
	Prefix  string `json:"prefix"`
	Cleanup bool   `json:"cleanup"`
}

type modelDoc struct {
	Type                    string         `json:"type"`
	UnkToken                string         `json:"unk_token"`
	ContinuingSubwordPrefix string         `json:"continuing_subword_prefix"`
	MaxInputCharsPerWord    int            `json:"max_input_chars_per_word"`
	Vocab                   map[string]int `json:"vocab"`
}

func newDocument(res *Result) document {
	cfg := res.Config

	added := make([]addedTokenDoc, 0, len(cfg.SpecialTokens))
	for _, s := range cfg.SpecialTokens {
		added = append(added, addedTokenDoc{
			ID:         res.Vocab[s],
			Content:    s,
			SingleWord: true,
			Special:    true,
		})
	}
	sort.Slice(added, func(i, j int) bool { return added[i].ID < added[j].ID })

	return document{
		Version:     formatVersion,
		AddedTokens: added,
		Normalizer:  normalizerDoc{Type: "BertNormalizer"},
		PreTokenizer: typeDoc{
			Type: pretokenizer.TypeName,
		},
		PostProcessor: postProcessorDoc{
			Type: "BertProcessing",
			Sep:  [2]any{SepToken, res.Vocab[SepToken]},
			Cls:  [2]any{ClsToken, res.Vocab[ClsToken]},
		},
		Decoder: decoderDoc{
			Type:   "WordPiece",
			Prefix: cfg.ContinuingSubwordPrefix,
		},
		Model: modelDoc{
			Type:                    "WordPiece",
			UnkToken:                UnkToken,
			ContinuingSubwordPrefix: cfg.ContinuingSubwordPrefix,
			MaxInputCharsPerWord:    MaxInputCharsPerWord,
			Vocab:                   res.Vocab,
		},
	}
}

// Save writes res to path as tokenizer JSON. The file is written to a
// temporary sibling first and renamed into place, so a failed save leaves no
// partial output behind.
func Save(res *Result, path string, pretty bool) error {
	if res == nil || res.Vocab == nil {
		return fmt.Errorf("nothing to save: tokenizer is not trained")
	}

	doc := newDocument(res)
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vocab-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move vocabulary into %s: %w", path, err)
	}
	return nil
}

// Load reads a tokenizer saved by Save.
func Load(path string) (*tk.Tokenizer, error) {
	t, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer %s: %w", path, err)
	}
	return t, nil
}
