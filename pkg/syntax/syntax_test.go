// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package syntax_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/apache/skywalking-queryforge/pkg/syntax"
	"github.com/apache/skywalking-queryforge/pkg/validation"
)

func TestSyntax(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Syntax Suite")
}

var _ = Describe("PromQL validator", func() {
	var v Validator

	BeforeEach(func() {
		v = NewPromQL()
	})

	It("accepts a plain selector", func() {
		Expect(v.Validate(`http_requests_total`).Valid).To(BeTrue())
	})

	It("accepts a selector with matchers", func() {
		Expect(v.Validate(`http_requests_total{job="api", env!="dev"}`).Valid).To(BeTrue())
	})

	It("accepts a range function call", func() {
		Expect(v.Validate(`rate(http_requests_total{job="api"}[5m])`).Valid).To(BeTrue())
	})

	It("accepts aggregation with grouping", func() {
		Expect(v.Validate(`sum by (instance) (rate(node_cpu_seconds_total[5m]))`).Valid).To(BeTrue())
	})

	It("accepts binary arithmetic and comparison", func() {
		Expect(v.Validate(`100 - avg(cpu_idle) / 2`).Valid).To(BeTrue())
		Expect(v.Validate(`up == 1`).Valid).To(BeTrue())
		Expect(v.Validate(`x > bool 0`).Valid).To(BeTrue())
	})

	It("accepts offset and nested expressions", func() {
		Expect(v.Validate(`sum(rate(requests[1m] offset 5m)) or vector(0)`).Valid).To(BeTrue())
	})

	It("rejects an unterminated call", func() {
		res := v.Validate(`rate(`)
		Expect(res.Valid).To(BeFalse())
		Expect(res.Stage).To(Equal(validation.StageSyntax))
		Expect(res.Err).NotTo(BeEmpty())
	})

	It("rejects an empty query without parsing", func() {
		res := v.Validate("   ")
		Expect(res.Valid).To(BeFalse())
		Expect(res.Err).To(Equal("PromQL query cannot be empty"))
		Expect(res.Line).To(BeZero())
	})

	It("reports a position for a mid-query error", func() {
		res := v.Validate(`sum(rate(x[5m])) by (`)
		Expect(res.Valid).To(BeFalse())
		Expect(res.Err).To(ContainSubstring("Invalid PromQL syntax"))
	})
})

var _ = Describe("LogQL validator", func() {
	var v Validator

	BeforeEach(func() {
		v = NewLogQL()
	})

	It("accepts a selector with a line filter", func() {
		res := v.Validate(`{service="payments"} |= "error"`)
		Expect(res.Valid).To(BeTrue())
		Expect(res.Err).To(BeEmpty())
	})

	It("accepts multiple matchers and stages", func() {
		Expect(v.Validate(`{app="web", env=~"prod.*"} |= "timeout" != "healthz" | json | status >= 500`).Valid).To(BeTrue())
	})

	It("accepts formatting stages", func() {
		Expect(v.Validate(`{app="web"} | logfmt | line_format "{{.message}}" | label_format level=severity`).Valid).To(BeTrue())
	})

	It("accepts range and vector aggregations", func() {
		Expect(v.Validate(`rate({service="payments"}[5m])`).Valid).To(BeTrue())
		Expect(v.Validate(`sum by (service) (count_over_time({app="web"} |= "error" [1h]))`).Valid).To(BeTrue())
	})

	It("rejects an unterminated selector", func() {
		res := v.Validate(`{invalid`)
		Expect(res.Valid).To(BeFalse())
		Expect(res.Err).NotTo(BeEmpty())
		Expect(res.Stage).To(Equal(validation.StageSyntax))
	})

	It("rejects a matcher without a value", func() {
		res := v.Validate(`{service=}`)
		Expect(res.Valid).To(BeFalse())
		Expect(res.Line).To(Equal(1))
		Expect(res.Column).To(BeNumerically(">", 1))
		Expect(res.Context).To(ContainSubstring("^"))
	})

	It("rejects an empty query without parsing", func() {
		Expect(v.Validate("").Err).To(Equal("LogQL query cannot be empty"))
	})
})

var _ = Describe("Splunk SPL validator", func() {
	var v Validator

	BeforeEach(func() {
		v = NewSPL()
	})

	It("accepts a search with piped commands", func() {
		Expect(v.Validate(`index=web status=500 | stats count by host | sort - count | head 20`).Valid).To(BeTrue())
	})

	It("accepts an explicit search keyword and quoted terms", func() {
		Expect(v.Validate(`search index=main "connection refused" sourcetype=syslog`).Valid).To(BeTrue())
	})

	It("accepts where and eval style commands", func() {
		Expect(v.Validate(`index=app | where duration > 300 | stats avg(duration) by service`).Valid).To(BeTrue())
	})

	It("rejects a dangling comparison", func() {
		res := v.Validate(`index=`)
		Expect(res.Valid).To(BeFalse())
		Expect(res.Err).To(ContainSubstring("Splunk SPL"))
	})

	It("rejects tokens outside the language", func() {
		Expect(v.Validate(`{invalid`).Valid).To(BeFalse())
	})

	It("rejects an empty query without parsing", func() {
		Expect(v.Validate(" \t ").Err).To(Equal("Splunk SPL query cannot be empty"))
	})
})

var _ = Describe("Cypher validator", func() {
	var v Validator

	BeforeEach(func() {
		v = NewCypher()
	})

	It("accepts a match-return query", func() {
		Expect(v.Validate(`MATCH (n:Person) RETURN n.name`).Valid).To(BeTrue())
	})

	It("accepts relationships, where and ordering", func() {
		q := `MATCH (n:Person)-[r:KNOWS]->(m) WHERE n.age > 30 AND m.city = 'Berlin' RETURN n.name AS name ORDER BY name DESC LIMIT 10`
		Expect(v.Validate(q).Valid).To(BeTrue())
	})

	It("accepts lowercase keywords", func() {
		Expect(v.Validate(`match (a)-[:CALLS]->(b) return count(*)`).Valid).To(BeTrue())
	})

	It("accepts node properties", func() {
		Expect(v.Validate(`MATCH (s:Service {name: "payments"}) RETURN s`).Valid).To(BeTrue())
	})

	It("rejects an unterminated node", func() {
		res := v.Validate(`MATCH (n RETURN n`)
		Expect(res.Valid).To(BeFalse())
		Expect(res.Err).To(ContainSubstring("Cypher"))
	})

	It("rejects an empty query without parsing", func() {
		Expect(v.Validate("").Err).To(Equal("Cypher query cannot be empty"))
	})
})

var _ = Describe("validator instances", func() {
	It("keeps language grammars independent", func() {
		logql := NewLogQL()
		promql := NewPromQL()
		Expect(logql.Validate(`{service="payments"} |= "error"`).Valid).To(BeTrue())
		Expect(promql.Validate(`rate(http_requests_total[5m])`).Valid).To(BeTrue())
		Expect(promql.Language()).NotTo(Equal(logql.Language()))
	})
})
