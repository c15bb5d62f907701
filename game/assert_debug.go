//go:build debug

package game

func init() { debugBuild = true }
