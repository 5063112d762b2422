// Command compiloor compiles security review findings into a PDF report.
package main

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitWithError(err)
	}
}
