package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Print the algorithm recache implements",
	Long:  `Explain prints a short description of how recache resolves, hashes, and rewrites asset references.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(explainText)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

const explainText = `recache builds a content-addressed cache of a set of entry files and
everything they transitively reference.

1. Discovery: every file under the configured search roots is registered
   by its logical (URL-relative) path.

2. Descent: starting from each entry point, recache scans its textual
   content for quoted reference-shaped strings, resolves each candidate
   against the registry (as-is, relative to the referrer, under a fixed
   prefix list, or under a prefix's child directories), and recurses into
   whatever it resolves to.

3. Hashing: a resolved file's content, once any references inside it have
   themselves been rewritten, is hashed to a short content hash. Binary
   files are hashed as-is. Mutual cycles are broken by hashing a file's
   unrewritten bytes as a placeholder, then redraining any referrer that
   used the placeholder once the real hash is known.

4. Rewrite: every resolved reference in a file's content is replaced with
   its target's hashed output path before the file itself is emitted.

5. Emission: entry points keep their original filename; every other
   asset is emitted as "<logical-path>_<hash>__<ext>" under the output
   directory. Unresolved candidates that look like paths are recorded in
   a not-found report instead of failing the run.
`
