//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"strings"
	"syscall/js"
	"time"

	"dslsplit/config"
	"dslsplit/internal/adapter/analyzer"
	"dslsplit/internal/adapter/memstore"
	"dslsplit/internal/adapter/ngram"
	"dslsplit/internal/domain"
	"dslsplit/internal/usecase"
)

var (
	cfg        *config.Config
	store      *memstore.MemoryStore
	lemmas     domain.LemmaSet
	pentagrams map[string]*domain.PentagramTable
	splitUC    *usecase.SplitUseCase
)

func init() {
	cfg = config.DefaultConfig()
	reset()
}

func reset() {
	store = memstore.NewMemoryStore()
	lemmas = domain.LemmaSet{}
	pentagrams = make(map[string]*domain.PentagramTable)
	splitUC = nil
}

func main() {
	c := make(chan struct{})

	js.Global().Set("dslTrainCareful", js.FuncOf(trainCareful))
	js.Global().Set("dslTrainBrute", js.FuncOf(trainBrute))
	js.Global().Set("dslSplit", js.FuncOf(split))
	js.Global().Set("dslClear", js.FuncOf(clearTables))
	js.Global().Set("dslStats", js.FuncOf(getStats))

	<-c
}

func lines(content string) []string {
	var words []string
	for _, line := range strings.Split(content, "\n") {
		if w := analyzer.NormalizeWord(line); w != "" {
			words = append(words, w)
		}
	}
	return analyzer.Dedup(words)
}

func trainCareful(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: dslTrainCareful(words)")
	}

	words := lines(args[0].String())
	table, err := ngram.TrainAffix(words, cfg.Careful.Language, cfg.Careful.Profile, nil)
	if err != nil {
		return makeError("training failed: " + err.Error())
	}
	err = store.SaveAffix(table, domain.TrainingInfo{
		Key:       domain.AffixKey(cfg.Careful.Language, cfg.Careful.Profile),
		Words:     len(words),
		Entries:   table.Len(),
		TrainedAt: time.Now().Unix(),
	})
	if err != nil {
		return makeError("saving failed: " + err.Error())
	}
	lemmas = domain.NewLemmaSet(words)

	rebuild()
	return makeResult(map[string]interface{}{
		"success": true,
		"words":   len(words),
		"ngrams":  table.Len(),
	})
}

func trainBrute(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: dslTrainBrute(variant, compounds)")
	}

	variant := args[0].String()
	words := lines(args[1].String())
	table, err := ngram.TrainPentagram(words, variant, nil)
	if err != nil {
		return makeError("training failed: " + err.Error())
	}
	err = store.SavePentagram(table, domain.TrainingInfo{
		Key:       domain.PentagramKey(variant),
		Words:     len(words),
		Entries:   table.Len(),
		TrainedAt: time.Now().Unix(),
	})
	if err != nil {
		return makeError("saving failed: " + err.Error())
	}
	pentagrams[variant] = table
	if _, ok := cfg.Brute.Variants[variant]; !ok {
		cfg.Brute.Variants[variant] = config.VariantConfig{}
	}
	if cfg.Brute.DefaultVariant == "" || len(pentagrams) == 1 {
		cfg.Brute.DefaultVariant = variant
	}

	rebuild()
	return makeResult(map[string]interface{}{
		"success": true,
		"variant": variant,
		"words":   len(words),
		"ngrams":  table.Len(),
	})
}

// rebuild swaps in a snapshot over everything trained so far. Splitting
// stays unavailable until the careful table exists.
func rebuild() {
	affix, err := store.LoadAffix(cfg.Careful.Language, cfg.Careful.Profile)
	if err != nil {
		return
	}
	tables := usecase.NewTables(affix, []string{cfg.Careful.Language}, lemmas, pentagrams, usecase.BruteOptions(cfg.Brute))
	if splitUC == nil {
		splitUC = usecase.NewSplitUseCase(cfg, tables, nil)
		return
	}
	splitUC.Swap(tables)
}

func split(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: dslSplit(word, [method], [variant])")
	}
	if splitUC == nil {
		return makeError("no careful table trained, call dslTrainCareful first")
	}

	req := usecase.SplitRequest{Word: args[0].String(), Method: "careful"}
	if len(pentagrams) > 0 {
		req.Method = "mixed"
	}
	if len(args) > 1 && args[1].String() != "" {
		req.Method = args[1].String()
	}
	if len(args) > 2 {
		req.Variant = args[2].String()
	}

	resp, err := splitUC.Split(context.Background(), req)
	if err != nil {
		return makeError("split failed: " + err.Error())
	}
	out, _ := json.Marshal(resp)
	return string(out)
}

func clearTables(this js.Value, args []js.Value) interface{} {
	cfg = config.DefaultConfig()
	reset()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	variants := make(map[string]interface{}, len(pentagrams))
	for name := range pentagrams {
		info, err := store.TrainingInfo(domain.PentagramKey(name))
		if err != nil {
			continue
		}
		variants[name] = map[string]interface{}{"words": info.Words, "ngrams": info.Entries}
	}

	careful := map[string]interface{}{}
	if info, err := store.TrainingInfo(domain.AffixKey(cfg.Careful.Language, cfg.Careful.Profile)); err == nil {
		careful["words"] = info.Words
		careful["ngrams"] = info.Entries
	}

	return makeResult(map[string]interface{}{
		"careful":  careful,
		"variants": variants,
		"lemmas":   len(lemmas),
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
