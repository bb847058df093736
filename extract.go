package localizer

import (
	"sort"
	"strings"
)

// Top-level snapshot fields that carry translatable text.
const (
	FieldTitle           = "title"
	FieldMetaTitle       = "metaTitle"
	FieldMetaDescription = "metaDescription"
)

// nonLinguisticKeys are key-name fragments that mark a field as
// non-linguistic. Matching is a case-insensitive substring check, so
// "imageUrl", "videoSrc", "blockId" and "ctaHref" are all skipped.
var nonLinguisticKeys = []string{"url", "src", "id", "href"}

// IsNonLinguisticKey reports whether a block data key must never be sent to
// the translation provider.
func IsNonLinguisticKey(key string) bool {
	k := strings.ToLower(key)
	for _, frag := range nonLinguisticKeys {
		if strings.Contains(k, frag) {
			return true
		}
	}
	return false
}

// UnitPath locates a text unit inside a snapshot precisely enough to write
// translated text back without corrupting structure.
type UnitPath struct {
	// Field is the top-level field name; empty for block units.
	Field string
	// Block is the index into Blocks; -1 for top-level units.
	Block int
	// Key is the block data key.
	Key string
	// Index is the array index within the data value; -1 when the value is
	// a plain string.
	Index int
	// SubKey is the key within an object array item; empty otherwise.
	SubKey string
}

// TextUnit is one translatable piece of text and its location.
type TextUnit struct {
	Path UnitPath
	Text string
}

// ExtractUnits walks a snapshot and returns every translatable text unit.
//
// Top-level title, metaTitle and metaDescription each yield one unit when
// non-empty after trimming. Per block, string values under keys that are not
// non-linguistic yield one unit; arrays yield one unit per non-empty string
// item, and object items recurse exactly one level into their string-valued
// keys. Numbers, booleans, nulls, nested non-array objects and anything
// deeper than one level inside arrays are deliberately left untouched.
func ExtractUnits(s *ContentSnapshot) []TextUnit {
	if s == nil {
		return nil
	}

	var units []TextUnit
	addTop := func(field, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		units = append(units, TextUnit{
			Path: UnitPath{Field: field, Block: -1, Index: -1},
			Text: text,
		})
	}
	addTop(FieldTitle, s.Title)
	addTop(FieldMetaTitle, s.MetaTitle)
	addTop(FieldMetaDescription, s.MetaDescription)

	for bi := range s.Blocks {
		units = append(units, extractBlockUnits(bi, s.Blocks[bi])...)
	}

	return units
}

// ExtractBlockUnits returns the translatable units of a single block,
// located relative to the given block index.
func ExtractBlockUnits(index int, block ContentBlock) []TextUnit {
	return extractBlockUnits(index, block)
}

func extractBlockUnits(bi int, b ContentBlock) []TextUnit {
	if len(b.Data) == 0 {
		return nil
	}

	var units []TextUnit
	for _, key := range sortedKeys(b.Data) {
		if IsNonLinguisticKey(key) {
			continue
		}

		switch v := b.Data[key].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				units = append(units, TextUnit{
					Path: UnitPath{Block: bi, Key: key, Index: -1},
					Text: v,
				})
			}
		case []string:
			for i, item := range v {
				if strings.TrimSpace(item) == "" {
					continue
				}
				units = append(units, TextUnit{
					Path: UnitPath{Block: bi, Key: key, Index: i},
					Text: item,
				})
			}
		case []any:
			for i, item := range v {
				switch it := item.(type) {
				case string:
					if strings.TrimSpace(it) != "" {
						units = append(units, TextUnit{
							Path: UnitPath{Block: bi, Key: key, Index: i},
							Text: it,
						})
					}
				case map[string]any:
					for _, sub := range sortedKeys(it) {
						if IsNonLinguisticKey(sub) {
							continue
						}
						sv, ok := it[sub].(string)
						if !ok || strings.TrimSpace(sv) == "" {
							continue
						}
						units = append(units, TextUnit{
							Path: UnitPath{Block: bi, Key: key, Index: i, SubKey: sub},
							Text: sv,
						})
					}
				}
			}
		}
	}

	return units
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cloneBlocks deep-copies blocks so translated text can be written into the
// copy without mutating the source snapshot.
func cloneBlocks(blocks []ContentBlock) []ContentBlock {
	if blocks == nil {
		return nil
	}
	out := make([]ContentBlock, len(blocks))
	for i, b := range blocks {
		out[i] = ContentBlock{ID: b.ID, Type: b.Type, Order: b.Order}
		if b.Data != nil {
			out[i].Data = cloneDataMap(b.Data)
		}
	}
	return out
}

func cloneDataMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		arr := make([]any, len(t))
		for i, item := range t {
			arr[i] = cloneValue(item)
		}
		return arr
	case map[string]any:
		return cloneDataMap(t)
	default:
		return v
	}
}

// setUnitText writes text at path into a translation under assembly. The
// blocks must be a clone produced from the same snapshot the path was
// extracted from.
func setUnitText(out *ContentTranslation, path UnitPath, text string) {
	if path.Block < 0 {
		switch path.Field {
		case FieldTitle:
			out.Title = text
		case FieldMetaTitle:
			out.MetaTitle = text
		case FieldMetaDescription:
			out.MetaDescription = text
		}
		return
	}

	if path.Block >= len(out.Blocks) {
		return
	}
	data := out.Blocks[path.Block].Data
	if data == nil {
		return
	}

	if path.Index < 0 {
		data[path.Key] = text
		return
	}

	switch arr := data[path.Key].(type) {
	case []string:
		if path.Index < len(arr) {
			arr[path.Index] = text
		}
	case []any:
		if path.Index >= len(arr) {
			return
		}
		if path.SubKey == "" {
			arr[path.Index] = text
			return
		}
		if obj, ok := arr[path.Index].(map[string]any); ok {
			obj[path.SubKey] = text
		}
	}
}
