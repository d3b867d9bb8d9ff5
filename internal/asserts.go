package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Assert паникует при нарушении condition. Значение паники содержит два ближайших места вызова.
func Assert(condition bool, tags ...any) {
	if !condition {
		panic(assertionFailure(tags))
	}
}

func assertionFailure(tags []any) string {
	var b strings.Builder
	b.WriteString("#ASSERTION_FAILED")
	for _, tag := range tags {
		fmt.Fprintf(&b, " %v", tag)
	}
	for skip := 2; skip <= 3; skip++ {
		if _, file, line, ok := runtime.Caller(skip); ok {
			fmt.Fprintf(&b, "\n\t%s:%d", file, line)
		}
	}
	return b.String()
}
