package main

import (
	"flag"
	"fmt"
	"os"

	svn "github.com/kfsone/svn-portfolio/lib"
)

// -list: the output of `svn list -R --xml`.
var listFileName = flag.String("list", "svn_list.xml", "path to svn list xml")

// -log: the output of `svn log -v --xml`.
var logFileName = flag.String("log", "svn_log.xml", "path to svn log xml")

// -rules: optional, specifies a rules file to work with. default: rules.yml
var rulesFile = flag.String("rules", "rules.yml", "path to rules file")

// -env-file: optional, a dotenv file to load before reading the rules.
var envFile = flag.String("env-file", "", "path to .env file")

// -store: optional, a yaml store the parsed repository is merged into.
var storeFile = flag.String("store", "", "path to portfolio store")

// -from-store: rebuild the repository from -store without reading any xml.
var fromStore = flag.Bool("from-store", false, "load the repository from the store instead of xml")

// -diff: show how the stored tree changes when the parse is merged in.
var showDiff = flag.Bool("diff", false, "show changes to the stored tree")

// -comment: "path:message", attach a comment to a stored file.
var comment = flag.String("comment", "", "add a comment to a file in the store, as path:message")

// -tree: print the tree of top-level groups.
var showTree = flag.Bool("tree", false, "print the repository tree")

// -yaml: optional, write a report of every group and its history.
var yamlFile = flag.String("yaml", "", "file to write a yaml report to")

// -quiet: suppress verbose output.
var quiet = flag.Bool("quiet", false, "suppress more output")

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}

func parseCommandLine() {
	// Process command line flags.
	flag.Parse()

	// confirm no unparsed arguments.
	if len(flag.Args()) > 0 {
		fmt.Println("unexpected arguments")
		flag.Usage()
		os.Exit(1)
	}

	if err := checkArguments(); err != nil {
		fail("%s", err)
	}
}

func checkArguments() error {
	if *svn.Verbose && *quiet {
		return fmt.Errorf("-quiet and -verbose are mutually exclusive")
	}

	if *storeFile == "" {
		switch {
		case *fromStore:
			return fmt.Errorf("-from-store requires -store")
		case *showDiff:
			return fmt.Errorf("-diff requires -store")
		case *comment != "":
			return fmt.Errorf("-comment requires -store")
		}
	}

	if *fromStore && *showDiff {
		return fmt.Errorf("-diff compares a fresh parse with the store, it cannot be used with -from-store")
	}

	if !*fromStore {
		// '-list' and '-log' are required when parsing.
		if *listFileName == "" || *logFileName == "" {
			return fmt.Errorf("missing -list or -log filename")
		}
	}

	return nil
}
