// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package cmd holds the directmemctl commands.
//
// Every command accepts trailing Section.Option=value arguments applied on top
// of the --conf file, e.g.
//
//	directmemctl --conf proxy.conf check DirectMemory.MaxDirectMemory=512MB
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NVIDIA/directmem/conf"
	"github.com/NVIDIA/directmem/directmem"
	"github.com/NVIDIA/directmem/environ"
	"github.com/NVIDIA/directmem/logger"
)

var (
	confPath string
	pid      int

	processReader *environ.ProcessReader
	limiter       *directmem.Limiter
)

var rootCmd = &cobra.Command{
	Use:                "directmemctl",
	Short:              "Report and check the direct memory limit",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  rootPreRunE,
	PersistentPostRunE: rootPostRunE,
}

// Execute runs the command named by os.Args
func Execute() error {
	return rootCmd.Execute()
}

func rootPreRunE(cmd *cobra.Command, args []string) (err error) {
	var confMap conf.ConfMap

	if "" == confPath {
		confMap = conf.MakeConfMap()
	} else {
		confMap, err = conf.MakeConfMapFromFile(confPath)
		if nil != err {
			return
		}
	}

	err = confMap.UpdateFromStrings(args)
	if nil != err {
		return
	}

	err = logger.Up(confMap)
	if nil != err {
		return
	}

	if 0 == pid {
		processReader = environ.Process()
	} else {
		processReader, err = environ.ForPID(pid)
		if nil != err {
			return
		}
	}
	processReader.UpdateFromConfMap(confMap)

	limiter, err = directmem.NewLimiterFromConfMap(confMap, processReader)

	return
}

func rootPostRunE(cmd *cobra.Command, args []string) (err error) {
	err = logger.Down()
	return
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "c", "", "The .conf file to read (\"-\" for stdin)")
	rootCmd.PersistentFlags().IntVarP(&pid, "pid", "p", 0, "Take launch arguments from this process instead")
}
