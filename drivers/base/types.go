package base

import "github.com/go-resty/resty/v2"

type Json map[string]interface{}

type ReqCallback func(req *resty.Request)
