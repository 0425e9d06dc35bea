package training

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmaffy/forest-trainer/utils"
	"golang.org/x/sync/errgroup"
)

// Config carries everything one training run needs.
type Config struct {
	Reference    string
	Bams         []string
	Regions      string
	Measures     []string
	Truth        string
	Confident    string
	Octopus      string
	RTG          string
	SDF          string
	Bcftools     string
	Ranger       string
	Trees        int
	MinNodeSize  int
	Threads      int
	OutputDir    string
	Prefix       string
	MissingValue float64
}

// Train runs the whole pipeline: call, evaluate against truth, extract
// features from the tp/fp calls, assemble the dataset and train the forest.
// Completed octopus and vcfeval stages recorded in a previous run's log are
// skipped, so an interrupted run can be resumed.
func Train(cfg Config) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	fmt.Printf("Checking dependencies ...\n\n")
	if err := utils.CheckDeps(cfg.Octopus, cfg.RTG, cfg.Bcftools, cfg.Ranger); err != nil {
		log.Fatalf("Dependency check failed: %v", err)
	}

	seqIDs, refErr := CheckReference(cfg.Reference)
	if refErr != nil {
		log.Fatalf("Reference check failed: %v", refErr)
	}
	fmt.Printf("Reference OK (%d sequences)\n\n", len(seqIDs))

	// ----------------------------------- Create/Open log file -------------------------------------------------- //
	logFilePath := filepath.Join(cfg.OutputDir, "training.log")
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	}))

	completedStages := readCompletedStages(logFilePath)

	// --------------------------------------- Call and evaluate ------------------------------------------------- //
	var evalDirs []string
	for _, bam := range cfg.Bams {
		bamID := ReadsID(bam)

		_, legacyVCF := callOutputPaths(cfg.OutputDir, cfg.Reference, bam)
		callKey := "octopus:" + bamID
		if _, done := completedStages[callKey]; !done {
			logger.Info("Starting octopus", "bam", bam)
			called, cErr := CallVariants(cfg.Octopus, cfg.Reference, bam, cfg.Regions, cfg.Measures, cfg.Threads, cfg.OutputDir)
			if cErr != nil {
				logger.Error("octopus failed", "bam", bam, "error", cErr)
				log.Fatalf("%v", cErr)
			}
			legacyVCF = called
			logger.Info("Completed octopus", "bam", bam, "processKey", callKey)
		} else {
			logger.Info("Skipping octopus (already completed)", "bam", bam)
		}

		evalDir := evalDirFor(cfg.OutputDir, legacyVCF)
		evalKey := "vcfeval:" + bamID
		if _, done := completedStages[evalKey]; !done {
			logger.Info("Starting vcfeval", "bam", bam)
			dir, eErr := EvalCalls(cfg.RTG, cfg.SDF, cfg.Truth, cfg.Confident, legacyVCF, cfg.OutputDir)
			if eErr != nil {
				logger.Error("vcfeval failed", "bam", bam, "error", eErr)
				log.Fatalf("%v", eErr)
			}
			evalDir = dir
			logger.Info("Completed vcfeval", "bam", bam, "processKey", evalKey)
		} else {
			logger.Info("Skipping vcfeval (already completed)", "bam", bam)
		}
		evalDirs = append(evalDirs, evalDir)
	}

	// --------------------------------------- Extract features -------------------------------------------------- //
	var dataPaths []string
	var tmpPaths []string
	var counts []SampleCounts
	for i, evalDir := range evalDirs {
		tpVCF := filepath.Join(evalDir, truePositivesVCF)
		fpVCF := filepath.Join(evalDir, falsePositivesVCF)
		tpTrainVCF := strings.Replace(tpVCF, "tp.vcf", "tp.train.vcf", 1)
		fpTrainVCF := strings.Replace(fpVCF, "fp.vcf", "fp.train.vcf", 1)

		if err := SubsetRegions(cfg.Bcftools, tpVCF, tpTrainVCF, cfg.Regions); err != nil {
			logger.Error("subset failed", "vcf", tpVCF, "error", err)
			log.Fatalf("%v", err)
		}
		if err := SubsetRegions(cfg.Bcftools, fpVCF, fpTrainVCF, cfg.Regions); err != nil {
			logger.Error("subset failed", "vcf", fpVCF, "error", err)
			log.Fatalf("%v", err)
		}

		tpDat := strings.TrimSuffix(tpTrainVCF, ".vcf.gz") + ".dat"
		fpDat := strings.TrimSuffix(fpTrainVCF, ".vcf.gz") + ".dat"

		var tpRows, fpRows int
		var g errgroup.Group
		g.Go(func() error {
			var mErr error
			tpRows, mErr = MakeRangerData(tpTrainVCF, tpDat, true, cfg.Measures, cfg.MissingValue)
			return mErr
		})
		g.Go(func() error {
			var mErr error
			fpRows, mErr = MakeRangerData(fpTrainVCF, fpDat, false, cfg.Measures, cfg.MissingValue)
			return mErr
		})
		if err := g.Wait(); err != nil {
			logger.Error("feature extraction failed", "evalDir", evalDir, "error", err)
			log.Fatalf("Feature extraction failed for %s: %v", evalDir, err)
		}
		logger.Info("Extracted features", "evalDir", evalDir, "tpRows", tpRows, "fpRows", fpRows)

		counts = append(counts, SampleCounts{Sample: ReadsID(cfg.Bams[i]), TP: tpRows, FP: fpRows})
		dataPaths = append(dataPaths, tpDat, fpDat)
		tmpPaths = append(tmpPaths, tpTrainVCF, fpTrainVCF)
	}

	// --------------------------------------- Assemble dataset -------------------------------------------------- //
	masterDat := filepath.Join(cfg.OutputDir, cfg.Prefix+".dat")
	if err := Concat(dataPaths, masterDat); err != nil {
		log.Fatalf("Failed to assemble %s: %v", masterDat, err)
	}
	if err := RemoveAll(append(dataPaths, tmpPaths...)); err != nil {
		log.Fatalf("Failed to remove intermediate files: %v", err)
	}
	if err := Shuffle(masterDat); err != nil {
		log.Fatalf("Failed to shuffle %s: %v", masterDat, err)
	}
	if err := AddHeader(masterDat, RangerHeader(cfg.Measures)); err != nil {
		log.Fatalf("Failed to write header to %s: %v", masterDat, err)
	}
	logger.Info("Assembled dataset", "path", masterDat)

	// ----------------------------------------- Train forest ---------------------------------------------------- //
	outPrefix := filepath.Join(cfg.OutputDir, cfg.Prefix)
	if err := RunRangerTraining(cfg.Ranger, masterDat, cfg.Trees, cfg.MinNodeSize, cfg.Threads, outPrefix); err != nil {
		logger.Error("ranger failed", "error", err)
		log.Fatalf("%v", err)
	}
	if err := RemoveConfusion(outPrefix); err != nil {
		log.Fatalf("Failed to remove confusion file: %v", err)
	}
	logger.Info("Completed training", "forest", outPrefix+".forest")

	// -------------------------------------- Summary and report ------------------------------------------------- //
	summary, sumErr := SummarizeDataset(masterDat, cfg.Measures)
	if sumErr != nil {
		log.Fatalf("Failed to summarize %s: %v", masterDat, sumErr)
	}
	if err := WriteSummary(outPrefix+".summary.tsv", summary); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}
	if err := WriteReport(outPrefix+".report.html", counts); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Printf("Trained on %d rows (%d tp, %d fp). Forest written to %s.forest\n",
		summary.Rows, summary.TPRows, summary.FPRows, outPrefix)
}

// readCompletedStages reads the run log and returns the stage keys that
// finished in earlier runs.
func readCompletedStages(logFilePath string) map[string]struct{} {
	completed := make(map[string]struct{})
	file, err := os.Open(logFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return completed
		}
		log.Fatalf("Failed to read log file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		var logEntry struct {
			Level      string `json:"level"`
			Msg        string `json:"msg"`
			ProcessKey string `json:"processKey"`
		}
		if err := json.Unmarshal([]byte(line), &logEntry); err == nil {
			if logEntry.Level == "INFO" && strings.HasPrefix(logEntry.Msg, "Completed") && logEntry.ProcessKey != "" {
				completed[logEntry.ProcessKey] = struct{}{}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Error scanning log file: %v", err)
	}

	return completed
}
