package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SplitWidth int

	path string
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".diatermrc")
}

func loadConfig(path string) *Config {
	config := &Config{
		SplitWidth: defaultSplitWidth,
		path:       path,
	}
	if path == "" {
		return config
	}

	file, err := os.Open(path)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "splitwidth", "split_width":
			n, err := strconv.Atoi(value)
			if err != nil || n < minPaneWidth {
				log.Printf("config: ignoring splitwidth=%q", value)
				continue
			}
			config.SplitWidth = n
		}
	}

	return config
}

// save persists the config. Failures are logged and swallowed; a
// broken rc file should never interrupt editing.
func (c *Config) save() {
	if c.path == "" {
		return
	}
	content := fmt.Sprintf("splitwidth=%d\n", c.SplitWidth)
	if err := os.WriteFile(c.path, []byte(content), 0644); err != nil {
		log.Printf("config: save failed: %v", err)
	}
}
