package utils

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type Config struct {
	Reference    string
	Regions      string
	Truth        string
	Confident    string
	OutputDir    string
	Prefix       string
	Bams         []string
	Measures     []string
	Octopus      string
	RTG          string
	SDF          string
	Bcftools     string
	Ranger       string
	Trees        int
	MinNodeSize  int
	Threads      int
	MissingValue float64
	HasMissing   bool
}

func ReadConfig(configPath string) (Config, error) {
	configFile, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer configFile.Close()
	var cfg Config

	scanner := bufio.NewScanner(configFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "Reference":
			cfg.Reference = value
		case "bam":
			cfg.Bams = append(cfg.Bams, value)
		case "Regions":
			cfg.Regions = value
		case "Truth":
			cfg.Truth = value
		case "Confident":
			cfg.Confident = value
		case "Measures":
			cfg.Measures = append(cfg.Measures, strings.Fields(value)...)
		case "OutputDir":
			cfg.OutputDir = value
		case "Prefix":
			cfg.Prefix = value
		case "Octopus":
			cfg.Octopus = value
		case "RTG":
			cfg.RTG = value
		case "SDF":
			cfg.SDF = value
		case "Bcftools":
			cfg.Bcftools = value
		case "Ranger":
			cfg.Ranger = value
		case "Trees":
			n, nErr := strconv.Atoi(value)
			if nErr != nil {
				return cfg, fmt.Errorf("bad Trees value %q: %v", value, nErr)
			}
			cfg.Trees = n
		case "MinNodeSize":
			n, nErr := strconv.Atoi(value)
			if nErr != nil {
				return cfg, fmt.Errorf("bad MinNodeSize value %q: %v", value, nErr)
			}
			cfg.MinNodeSize = n
		case "Threads":
			n, nErr := strconv.Atoi(value)
			if nErr != nil {
				return cfg, fmt.Errorf("bad Threads value %q: %v", value, nErr)
			}
			cfg.Threads = n
		case "MissingValue":
			f, fErr := strconv.ParseFloat(value, 64)
			if fErr != nil {
				return cfg, fmt.Errorf("bad MissingValue value %q: %v", value, fErr)
			}
			cfg.MissingValue = f
			cfg.HasMissing = true
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// RunCmdVerbose invokes a binary with explicit arguments, echoing the command
// line and passing the child's stdout/stderr through.
func RunCmdVerbose(name string, args ...string) error {
	fmt.Println(name + " " + strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

// CheckDeps verifies that every external binary the pipeline shells out to can
// actually be executed before any work starts.
func CheckDeps(bins ...string) error {
	for _, bin := range bins {
		if bin == "" {
			return fmt.Errorf("external binary path is empty")
		}
		if strings.ContainsRune(bin, os.PathSeparator) {
			if _, err := os.Stat(bin); err != nil {
				return fmt.Errorf("%s: %v", bin, err)
			}
			continue
		}
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found on PATH: %v", bin, err)
		}
	}
	return nil
}
