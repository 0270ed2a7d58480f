package weights

import "errors"

// ErrParse indicates a weights-file line did not match "name value".
var ErrParse = errors.New("weights: parse error")
