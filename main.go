/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ucanduit/ucanduit/cmd"

func main() {
	cmd.Execute()
}
