package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Consecutive guards returning the same value can be merged with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic`)
}

// leaks flags code paths that could expose driver or upstream text to callers.
func leaks(m dsl.Matcher) {
	m.Match(`writeError($w, $status, $err.Error())`).
		Where(m["err"].Type.Is(`error`)).
		Report(`error text reaches the response body; log it and return a generic message`)

	m.Match(`http.Error($w, $err.Error(), $status)`).
		Where(m["err"].Type.Is(`error`)).
		Report(`error text reaches the response body; log it and return a generic message`)
}

// contexts flags blocking calls that drop the request context.
func contexts(m dsl.Matcher) {
	m.Match(`$db.Query($*_)`, `$db.QueryRow($*_)`, `$db.Exec($*_)`).
		Where(m["db"].Type.Is(`*sql.DB`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`use the Context variant so a client abort cancels the statement`)

	m.Match(`http.NewRequest($*_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`use http.NewRequestWithContext so the inbound context reaches the upstream call`)

	m.Match(`http.DefaultClient`).
		Report(`http.DefaultClient has no timeout; use a configured *http.Client`)
}

// layering keeps driver access inside the store package.
func layering(m dsl.Matcher) {
	m.Match(`sql.Open($*_)`).
		Where(!m.File().PkgPath.Matches(`internal/infra/store$`)).
		Report(`open database handles through store.Connector`)
}
