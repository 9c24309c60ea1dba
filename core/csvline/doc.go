// Package csvline reads the line-oriented, comma-separated data files used for
// catalogue overrides.
//
// The format is deliberately simpler than RFC 4180:
//   - Blank lines and lines starting with "#" (after trimming) are skipped.
//   - Fields are separated by commas. A field may be wrapped in double quotes,
//     in which case "" is an escaped quote and commas are literal.
//   - A quoted field never spans lines.
//
// Every line is validated by re-joining the raw segments found by the splitter
// and comparing the result with the line itself. A line that does not survive
// this round trip (an unterminated quote, a stray quote inside an unquoted
// field, text after a closing quote) fails with a *dataerr.UserError carrying
// the 1-based line number. Whether that aborts the file is up to the caller.
//
// # Usage
//
//	r := csvline.NewReader(f)
//	for {
//	    line, err := r.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(line.Number, line.Fields)
//	}
package csvline
