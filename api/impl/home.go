// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package impl

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// home serves a small built-in client for poking at the query endpoint from
// a browser. The real interface is POST /q.
func (s *Server) home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(homePage))
}

const homePage = `<!DOCTYPE html>
<html>
<head>
	<title>Tern</title>
	<style>
		body { font-family: sans-serif; margin: 2em; max-width: 60em; }
		label { display: block; margin-top: 1em; font-weight: bold; }
		input, textarea, select { width: 100%; font-family: monospace; }
		textarea { height: 6em; }
		table { border-collapse: collapse; margin-top: 1em; }
		td, th { border: 1px solid #999; padding: 0.3em 0.6em; }
		pre { background: #f4f4f4; padding: 1em; }
		.error { color: #b00; }
	</style>
</head>
<body>
	<h1>Tern</h1>
	<form id="q">
		<label>Document URL</label>
		<input name="url" placeholder="https://example.org/catalog.html">
		<label>Rule mode</label>
		<select name="rulemode">
			<option value="none">none</option>
			<option value="basic">basic</option>
			<option value="advanced">advanced</option>
			<option value="custom">custom</option>
			<option value="declarative">declarative</option>
		</select>
		<label>Rules</label>
		<textarea name="rules" placeholder="?x ex:hasAuthor ?y => ?y ex:wrote ?x"></textarea>
		<label>Query</label>
		<textarea name="query" placeholder="SELECT ?b ?a WHERE { ?b ex:hasAuthor ?a }"></textarea>
		<p><button type="submit">Run</button></p>
	</form>
	<div id="out"></div>
	<script>
	document.getElementById('q').addEventListener('submit', async (e) => {
		e.preventDefault();
		const out = document.getElementById('out');
		out.textContent = 'Running...';
		const resp = await fetch('/q', {
			method: 'POST',
			body: new URLSearchParams(new FormData(e.target)),
		});
		const body = await resp.json();
		if (body.error) {
			out.innerHTML = '<p class="error"></p>';
			out.firstChild.textContent = body.error;
			return;
		}
		if (body.select) {
			const esc = (s) => { const d = document.createElement('td'); d.textContent = s; return d; };
			const table = document.createElement('table');
			const head = table.insertRow();
			body.select.headers.forEach(h => head.appendChild(esc(h)));
			body.select.rows.forEach(r => {
				const tr = table.insertRow();
				r.forEach(c => tr.appendChild(esc(c)));
			});
			out.innerHTML = '';
			out.appendChild(table);
		} else if (body.ask !== undefined) {
			out.textContent = body.ask;
		} else {
			const pre = document.createElement('pre');
			pre.textContent = body.graph || '(empty)';
			out.innerHTML = '';
			out.appendChild(pre);
		}
		if (body.rules && body.rules.skipped) {
			const p = document.createElement('p');
			p.className = 'error';
			p.textContent = body.rules.skipped.map(s => 'line ' + s.line + ': ' + s.reason).join('; ');
			out.appendChild(p);
		}
	});
	</script>
</body>
</html>
`
