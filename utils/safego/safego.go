/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package safego

import (
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/datazip-inc/sieve/utils/logger"
)

var startTime time.Time

// Recovery logs a recovered panic with its stack. With exit set the process
// terminates with status 1 whether or not a panic happened.
func Recovery(exit bool) {
	err := recover()
	if err != nil {
		logger.Error(err)
		for _, str := range strings.Split(string(debug.Stack()), "\n") {
			logger.Error(strings.ReplaceAll(str, "\t", ""))
		}
	}
	if exit {
		logger.Infof("Time of execution %v", time.Since(startTime).String())
		os.Exit(1)
	}
}

func init() {
	startTime = time.Now()
}
