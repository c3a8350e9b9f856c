package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/viant/crudly/httputils"
)

// Separator joins multi value CORS headers
const Separator = ", "

// Cors represents cross origin settings, route level settings inherit router level ones
type Cors struct {
	AllowCredentials *bool     `json:",omitempty"`
	AllowHeaders     *[]string `json:",omitempty"`
	AllowMethods     *[]string `json:",omitempty"`
	AllowOrigins     *[]string `json:",omitempty"`
	ExposeHeaders    *[]string `json:",omitempty"`
	MaxAge           *int64    `json:",omitempty"`
}

func (c *Cors) inherit(cors *Cors) {
	if cors == nil {
		return
	}
	if c.ExposeHeaders == nil {
		c.ExposeHeaders = cors.ExposeHeaders
	}
	if c.AllowMethods == nil {
		c.AllowMethods = cors.AllowMethods
	}
	if c.AllowHeaders == nil {
		c.AllowHeaders = cors.AllowHeaders
	}
	if c.AllowOrigins == nil {
		c.AllowOrigins = cors.AllowOrigins
	}
	if c.AllowCredentials == nil {
		c.AllowCredentials = cors.AllowCredentials
	}
	if c.MaxAge == nil {
		c.MaxAge = cors.MaxAge
	}
}

func (c *Cors) allowOrigin(origin string) bool {
	if c.AllowOrigins == nil || origin == "" {
		return true
	}
	for _, candidate := range *c.AllowOrigins {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

// enableCors sets CORS headers, preflight requests additionally get allowed methods, headers and max age
func enableCors(writer http.ResponseWriter, request *http.Request, cors *Cors, methods []string, preflight bool) bool {
	if cors == nil {
		return true
	}
	origin := request.Header.Get("Origin")
	if !cors.allowOrigin(origin) {
		return false
	}
	if origin == "" {
		writer.Header().Set(httputils.AllowOriginHeader, "*")
	} else {
		writer.Header().Set(httputils.AllowOriginHeader, origin)
	}
	if cors.AllowCredentials != nil {
		writer.Header().Set(httputils.AllowCredentialsHeader, strconv.FormatBool(*cors.AllowCredentials))
	}
	if cors.ExposeHeaders != nil {
		writer.Header().Set(httputils.ExposeHeadersHeader, strings.Join(*cors.ExposeHeaders, Separator))
	}
	if !preflight {
		return true
	}
	if cors.AllowMethods != nil {
		writer.Header().Set(httputils.AllowMethodsHeader, strings.Join(*cors.AllowMethods, Separator))
	} else {
		writer.Header().Set(httputils.AllowMethodsHeader, strings.Join(methods, Separator))
	}
	if cors.AllowHeaders != nil {
		writer.Header().Set(httputils.AllowHeadersHeader, strings.Join(*cors.AllowHeaders, Separator))
	}
	if cors.MaxAge != nil {
		writer.Header().Set(httputils.MaxAgeHeader, strconv.Itoa(int(*cors.MaxAge)))
	}
	return true
}
