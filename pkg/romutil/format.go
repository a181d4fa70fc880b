/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package romutil

import "strings"

// FormatTextForDisplay formats text for display -- "text" in the sense of a
// text token (i.e., the kind of text a Hollicode program echoes).
func FormatTextForDisplay(text string) string {
	result := strings.ReplaceAll(text, "\n", "â‹…")
	if len(result) > 25 {
		return result[:25] + "â€¦"
	}
	return text
}
