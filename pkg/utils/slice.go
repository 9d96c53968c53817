package utils

// SliceConvert maps srcS into a new slice using the convert func, stopping at
// the first conversion error.
func SliceConvert[S any, D any](srcS []S, convert func(src S) (D, error)) ([]D, error) {
	res := make([]D, 0, len(srcS))
	for _, src := range srcS {
		dst, err := convert(src)
		if err != nil {
			return nil, err
		}
		res = append(res, dst)
	}
	return res, nil
}
