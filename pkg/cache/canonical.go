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

package cache

import (
	"encoding/json"
	"fmt"
)

// canonicalJSON serializes v with lexicographically sorted keys so that
// field declaration order never influences the bytes. Values that do not
// marshal natively are stringified instead of failing.
func canonicalJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		raw, _ = json.Marshal(fmt.Sprintf("%v", v))
		return raw
	}
	// Round-tripping through an untyped value makes encoding/json emit
	// map keys in sorted order.
	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return raw
	}
	sorted, err := json.Marshal(untyped)
	if err != nil {
		return raw
	}
	return sorted
}
