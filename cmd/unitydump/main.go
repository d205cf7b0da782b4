// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	unity "github.com/saferwall/unity"
	"github.com/spf13/cobra"
)

var (
	all       bool
	verbose   bool
	header    bool
	types     bool
	objects   bool
	externals bool
	tree      bool
)

func prettyPrint(buff []byte) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, buff, "", "\t")
	if err != nil {
		log.Println("JSON parse error: ", err)
		return string(buff)
	}

	return prettyJSON.String()
}

func isDirectory(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func parseSerializedFile(filename string, cmd *cobra.Command) {
	log.Printf("Processing filename %s", filename)

	f, err := unity.New(filename, &unity.Options{})
	if err != nil {
		log.Printf("Error while opening file: %s, reason: %s", filename, err)
		return
	}
	defer f.Close()

	err = f.Parse()
	if err != nil {
		log.Printf("Error while parsing file: %s, reason: %s", filename, err)
		if err != unity.ErrTruncatedMetadata && err != unity.ErrMalformedMetadata {
			return
		}
		// A truncated file still carries whatever decoded before the
		// cut, keep dumping.
	}

	fmt.Printf("version: %d, num types: %d, num objects: %d\n",
		f.Header.Version, len(f.Metadata.Types), len(f.Metadata.Objects))

	wantHeader, _ := cmd.Flags().GetBool("header")
	if wantHeader {
		hdr, _ := json.Marshal(f.Header)
		fmt.Println(prettyPrint(hdr))
	}

	wantTypes, _ := cmd.Flags().GetBool("types")
	if wantTypes {
		typeMeta, _ := json.Marshal(f.Metadata.Types)
		fmt.Println(prettyPrint(typeMeta))
	}

	wantObjects, _ := cmd.Flags().GetBool("objects")
	if wantObjects {
		objectInfos, _ := json.Marshal(f.Metadata.Objects)
		fmt.Println(prettyPrint(objectInfos))
	}

	wantExternals, _ := cmd.Flags().GetBool("externals")
	if wantExternals {
		externalFiles, _ := json.Marshal(f.Metadata.ExternalFiles)
		fmt.Println(prettyPrint(externalFiles))
	}

	wantTree, _ := cmd.Flags().GetBool("tree")
	if wantTree {
		d := unity.NewTextDumper(os.Stdout)
		f.Serialize(d)
	}

	wantAll, _ := cmd.Flags().GetBool("all")
	if wantAll {
		whole, _ := json.Marshal(f)
		fmt.Println(prettyPrint(whole))
	}
}

func parse(cmd *cobra.Command, args []string) {
	filePath := args[0]

	// filePath points to a file.
	if !isDirectory(filePath) {
		parseSerializedFile(filePath, cmd)

	} else {
		// filePath points to a directory,
		// walk recursively through all files.
		fileList := []string{}
		filepath.Walk(filePath, func(path string, f os.FileInfo, err error) error {
			if !isDirectory(path) {
				fileList = append(fileList, path)
			}
			return nil
		})

		for _, file := range fileList {
			parseSerializedFile(file, cmd)
		}
	}
}

func main() {

	var rootCmd = &cobra.Command{
		Use:   "unitydump",
		Short: "A Unity SerializedFile parser",
		Long:  "A parser for the container format of Unity game builds by Saferwall",
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print("You are using version 0.0.1")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps the file",
		Long:  "Dumps interesting structures of the Unity SerializedFile container",
		Args:  cobra.MinimumNArgs(1),
		Run:   parse,
	}

	// Init root command.
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	// Init flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&header, "header", "", false, "Dump the file header")
	dumpCmd.Flags().BoolVarP(&types, "types", "", false, "Dump type metadata")
	dumpCmd.Flags().BoolVarP(&objects, "objects", "", false, "Dump the object table")
	dumpCmd.Flags().BoolVarP(&externals, "externals", "", false, "Dump external file references")
	dumpCmd.Flags().BoolVarP(&tree, "tree", "", false, "Dump the whole file as an indented tree")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "Dump everything as JSON")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

}
