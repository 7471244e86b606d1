/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
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

package main

import (
	"github.com/comcast/thermalmon/buildinfo"
	"github.com/comcast/thermalmon/thermalinfo"
)

type indexAppData struct {
	Hostname string
	Build    interface{}
	Polled   bool
	Snapshot thermalinfo.Snapshot
}

func newIndexAppData(hostname string, snap thermalinfo.Snapshot, polled bool) indexAppData {
	return indexAppData{
		Hostname: hostname,
		Build:    buildinfo.Info,
		Polled:   polled,
		Snapshot: snap,
	}
}

const indexTmpl string = `<html>
  <head>
    <title>Thermalmon Exporter</title>
    <style>
      .links, .build-info {
        display: flex;
      }
      h3, p {
        padding-right: 1em;
      }
      td, th {
        padding: 0 1em;
        text-align: left;
      }
    </style>
  </head>
  <body>
    <h1>Thermalmon Exporter - {{ .Hostname }}</h1>
    <div class="build-info">
      <p><b>platform:</b> {{ .Build.Platform }}</p>
      <p><b>airflow:</b> {{ .Build.Direction }}</p>
      <p><b>build date:</b> {{ .Build.Date }}</p>
      <p><b>revision:</b> {{ .Build.GitRevision }}</p>
      <p><b>version:</b> {{ .Build.GitVersion }}</p>
    </div>
    <div class="links">
      <h3><a href="metrics">Metrics</a></h3>
      <h3><a href="status">Status</a></h3>
      <h3><a href="info">Info</a></h3>
    </div>
    {{ if .Polled }}
    <p><b>last poll:</b> {{ .Snapshot.Time.Format "2006-01-02T15:04:05Z07:00" }}</p>
    <table>
      <tr><th>#</th><th>Sensor</th><th>Present</th><th>Temperature</th><th>Band</th><th>Warm up</th></tr>
      {{ range .Snapshot.Sensors }}
      <tr>
        <td>{{ .Index }}</td>
        <td>{{ .Name }}</td>
        <td>{{ .Present }}</td>
        <td>{{ if .Evaluated }}{{ .Temperature }}{{ else }}N/A{{ end }}</td>
        <td>{{ .Band }}</td>
        <td>{{ .WarmUp }}</td>
      </tr>
      {{ end }}
    </table>
    <table>
      <tr><th>Fan</th><th>Present</th><th>Faulty</th></tr>
      {{ range .Snapshot.Fans }}
      <tr><td>{{ .Name }}</td><td>{{ .Present }}</td><td>{{ .Faulty }}</td></tr>
      {{ end }}
    </table>
    {{ else }}
    <p>no poll has completed yet</p>
    {{ end }}
  </body>
</html>
`
