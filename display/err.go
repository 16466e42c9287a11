package display

import (
	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

// ErrPage reports the failures of one page of a refresh.
type ErrPage struct {
	Page int
	Err  error
}

func (err *ErrPage) Error() string {
	return f("page %d %v", err.Page, err.Err)
}

func (err *ErrPage) Unwrap() error {
	return err.Err
}

// FailedPages lists the pages reported in a Refresh error.
func FailedPages(err error) (pages []int) {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		if page, ok := err.(*ErrPage); ok {
			pages = append(pages, page.Page)
		}
		return
	}

	for _, e := range joined.Unwrap() {
		if page, ok := e.(*ErrPage); ok {
			pages = append(pages, page.Page)
		}
	}

	return
}
