package vgroutes

import "net/url"

// PathParam is parameter key/value pair extracted from a URL path.
type PathParam struct {
	Key   string
	Value string
}

// PathParamList is a slice of PathParam in the order they appear in the path.
type PathParamList []PathParam

// ByName returns the named parameter value or an empty string if not found.
func (ps PathParamList) ByName(name string) string {
	for i := range ps {
		if ps[i].Key == name {
			return ps[i].Value
		}
	}
	return ""
}

// Values converts the list to url.Values, merging in any query values
// whose names are not already taken by a path parameter.
func (ps PathParamList) Values(query url.Values) url.Values {
	ret := make(url.Values, len(ps)+len(query))
	for _, p := range ps {
		ret.Set(p.Key, p.Value)
	}
	for k, v := range query {
		if ret[k] == nil {
			ret[k] = v
		}
	}
	return ret
}
