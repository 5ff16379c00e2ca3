// Package style compiles attribute level predicates into SQL fragments and
// marshals values between Go and a database driver.
//
// A Style is created once per dialect and is read-only afterwards, so a single
// instance may be shared by any number of goroutines.
//
//	s, err := style.New(
//	    style.WithMaxListSize(1000),
//	    style.WithDecimalConversion(style.DecimalLegacy),
//	    style.WithLogger(logger),
//	)
//
// # Binds
//
// BuildBindFor classifies a value and picks a TypeCode. Nil values are typed
// by the null type hint, and holders such as *Box[T] supply their element type:
//
//	b, _ := s.BuildBindFor(int32(7), nil)                      // INTEGER(7)
//	b, _ = s.BuildBindFor(nil, reflect.TypeFor[[]byte]())      // BLOB(null)
//	b, _ = s.BuildBindFor(strings.Repeat("x", 5000), nil)      // CLOB
//
// WriteBind applies a Bind to a Statement and ReadBind reads a column from a
// Row. ReadBind returns nil whenever the row reports the column as NULL.
//
// # Literals and predicates
//
//	s.ToPlainText([]string{"a", "it's"})     // ('a','it''s')
//	s.HasPrefix("P.NAME", "name")            // UPPER(P.NAME) LIKE UPPER(:name||'%')
//	s.EQ("P.ID", "&42")                      // P.ID=42
//	s.DateIsInLastDays("P.CREATED", "days")  // P.CREATED>=TRUNC(SYSDATE-(:days)) AND P.CREATED<TRUNC(SYSDATE+1)
//
// Bind names starting with the plain marker ("&" by default) are rendered
// literals; other names are prefixed with the bind marker (":").
//
// # Lists
//
// InList and NotInList split large value sets so that no single IN list
// exceeds MaxListSize:
//
//	s.InList("ID", []int{1, 2, 3, 4, 5}) // with max list size 2:
//	// (( ID IN (1,2)) OR ( ID IN (3,4)) OR ( ID IN (5)))
package style
