package main

// This is a tool for turning the xml exports of a Subversion repository into
// a browsable portfolio: a tree of directories and files where every entry
// carries its full history.
//
// Export the repository with:
//
//	svn list -R --xml <url> > svn_list.xml
//	svn log -v --xml <url> > svn_log.xml
//
// Use "rules.yml" to configure the tool; see Rules.
//
//	# print the tree of assignments
//	portfolio -list svn_list.xml -log svn_log.xml -tree
//
//	# merge a newer export into a store, showing what changed
//	portfolio -store portfolio.yml -diff
//
//	# comment on a stored file
//	portfolio -store portfolio.yml -from-store -comment "Assignment0/README:looks good"

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	svn "github.com/kfsone/svn-portfolio/lib"
	"github.com/kfsone/svn-portfolio/store"
)

func main() {
	parseCommandLine()

	if err := run(); err != nil {
		fmt.Println(fmt.Errorf("error: %w", err))
		os.Exit(1)
	}
}

// Log prints a message if -verbose was specified.
func Log(format string, args ...any) {
	if *svn.Verbose {
		fmt.Println(logLine(format, args...))
	}
}

// Info prints a message if -quiet was not specified.
func Info(format string, args ...any) {
	if !*quiet {
		fmt.Println(logLine(format, args...))
	}
}

func logLine(format string, args ...any) string {
	s := fmt.Sprintf("-- "+format, args...)
	s = strings.ReplaceAll(s, "\r", "<cr>")
	s = strings.ReplaceAll(s, "\n", "<lf>")
	return s
}

// loadEnv loads the named dotenv file, or a .env in the working directory
// if there is one.
func loadEnv(filename string) error {
	if filename != "" {
		if err := godotenv.Load(filename); err != nil {
			return fmt.Errorf("loading env file %s: %w", filename, err)
		}
		return nil
	}
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		Info("Warning: could not load .env: %s", err)
	}
	return nil
}

func run() error {
	if err := loadEnv(*envFile); err != nil {
		return err
	}

	rules, err := NewRules(*rulesFile)
	if err != nil {
		return err
	}

	var portfolio *store.Store
	if *storeFile != "" {
		Log("Opening store: %s", *storeFile)
		if portfolio, err = store.Open(*storeFile); err != nil {
			return err
		}
	}

	var repos *svn.Repository
	if *fromStore {
		Info("Loading %s", *storeFile)
		repos = portfolio.Repository(rules.Group())
	} else {
		Info("Parsing %s, %s", *listFileName, *logFileName)
		if repos, err = svn.NewParser(*listFileName, *logFileName, rules.Options()).ParseAll(); err != nil {
			return err
		}
	}

	dirs, files := repos.Counts()
	Info("Loaded %d directories, %d files in %d groups", dirs, files, len(repos.TopLevelGroups()))

	if portfolio != nil {
		if !*fromStore {
			if err := saveToStore(portfolio, repos, rules); err != nil {
				return err
			}
		}
		if *comment != "" {
			if err := addComment(portfolio, *comment, rules); err != nil {
				return err
			}
		}
		if err := portfolio.Flush(); err != nil {
			return err
		}
	}

	if *showTree {
		fmt.Print(renderTree(repos))
	}

	if *yamlFile != "" {
		Info("Writing report to %s", *yamlFile)
		if err := writeReport(repos, *yamlFile); err != nil {
			return err
		}
	}

	Info("Finished")

	return nil
}

func saveToStore(portfolio *store.Store, repos *svn.Repository, rules *Rules) error {
	var before string
	if *showDiff {
		before = renderTree(portfolio.Repository(rules.Group()))
	}

	stats := portfolio.Save(repos)
	Info("Stored %d new and %d updated entries, %d new revisions", stats.Added, stats.Updated, stats.Revisions)

	if *showDiff {
		after := renderTree(portfolio.Repository(rules.Group()))
		fmt.Print(treeDiff(*storeFile, before, after))
	}

	return nil
}

func addComment(portfolio *store.Store, arg string, rules *Rules) error {
	path, message, ok := strings.Cut(arg, ":")
	if !ok || path == "" || message == "" {
		return fmt.Errorf("invalid -comment %q, expected path:message", arg)
	}
	row, err := portfolio.AddComment(path, 0, message, rules.Words)
	if err != nil {
		return err
	}
	Info("Added comment %d to %s", row.ID, path)
	return nil
}
