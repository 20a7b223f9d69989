package web

// pageTemplates defines the "index" and "progress" pages.
const pageTemplates = `{{define "index"}}<!DOCTYPE html>
<html lang="id">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Berita</title>
    <style>
        body { font-family: -apple-system, system-ui, sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; color: #1e293b; }
        label { display: block; margin-top: 1rem; font-weight: 600; }
        input { width: 100%; padding: 0.5rem; margin-top: 0.25rem; box-sizing: border-box; }
        button { margin-top: 1.5rem; padding: 0.6rem 1.2rem; background: #2563eb; color: #fff; border: 0; border-radius: 4px; cursor: pointer; }
    </style>
</head>
<body>
    <h1>Cari Berita</h1>
    <form method="post" action="/">
        <label for="keyword">Kata kunci</label>
        <input id="keyword" name="keyword" type="text" required>
        <label for="max_articles">Maksimal artikel per situs</label>
        <input id="max_articles" name="max_articles" type="number" min="0" value="{{.DefaultMax}}">
        <button type="submit">Mulai</button>
    </form>
</body>
</html>{{end}}

{{define "progress"}}<!DOCTYPE html>
<html lang="id">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Progres {{.TaskID}}</title>
    <style>
        body { font-family: -apple-system, system-ui, sans-serif; max-width: 64rem; margin: 2rem auto; padding: 0 1rem; color: #1e293b; }
        progress { width: 100%; height: 1.5rem; }
        table { width: 100%; border-collapse: collapse; margin-top: 1.5rem; font-size: 0.9rem; }
        th, td { border-bottom: 1px solid #e2e8f0; padding: 0.4rem; text-align: left; vertical-align: top; }
        #download { display: none; margin-top: 1rem; }
    </style>
</head>
<body>
    <h1>Task {{.TaskID}}</h1>
    <progress id="bar" value="0" max="1"></progress>
    <p id="count">Mengumpulkan artikel...</p>
    <a id="download" href="/download/{{.TaskID}}">Unduh CSV</a>
    <table>
        <thead><tr><th>Situs</th><th>Tanggal</th><th>Judul</th><th>Ringkasan</th><th>Kategori</th></tr></thead>
        <tbody id="rows"></tbody>
    </table>
    <details>
        <summary>Kode kategori</summary>
        <ul>
            {{range .Sectors}}<li><b>{{.Code}}</b> {{.Name}}</li>
            {{end}}
        </ul>
    </details>
    <script>
        const taskID = {{.TaskID}};
        function cell(text) { const td = document.createElement('td'); td.textContent = text || ''; return td; }
        async function poll() {
            const res = await fetch('/status/' + taskID);
            if (!res.ok) { document.getElementById('count').textContent = 'Task tidak ditemukan.'; return; }
            const data = await res.json();
            const bar = document.getElementById('bar');
            bar.max = Math.max(data.total, 1);
            bar.value = data.done;
            document.getElementById('count').textContent = data.done + ' / ' + data.total + ' artikel diproses';
            const body = document.getElementById('rows');
            body.replaceChildren();
            for (const row of data.rows) {
                const tr = document.createElement('tr');
                const title = cell('');
                const a = document.createElement('a');
                a.href = row.link; a.textContent = row.title; a.target = '_blank';
                title.appendChild(a);
                tr.append(cell(row.site), cell(row.tanggal), title, cell(row.summary), cell(row.kategori));
                body.appendChild(tr);
            }
            if (data.finished) {
                document.getElementById('download').style.display = 'inline-block';
                return;
            }
            setTimeout(poll, 2000);
        }
        poll();
    </script>
</body>
</html>{{end}}
`
