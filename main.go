// Command ftreesync synchronizes a destination directory tree to match a
// source directory tree under one of four policies. See package engine
// for the sync engine and package cmd for flag handling.
package main

import "github.com/gilramir/ftreesync/cmd"

func main() {
	var app cmd.Application
	app.Run()
}
