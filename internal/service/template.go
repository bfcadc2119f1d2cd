package service

// reportTemplate is the HTML email body. Styling is inline-friendly CSS kept
// close to what mail clients tolerate.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background: #2c3e50; color: white; padding: 20px; border-radius: 5px; }
        .summary { background: #ecf0f1; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .section { margin: 20px 0; }
        .section-title { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 5px; }
        .process-card { background: #fff; border: 1px solid #ddd; padding: 15px; margin: 10px 0; border-radius: 5px; }
        .failed { border-left: 4px solid #e74c3c; }
        .finished { border-left: 4px solid #27ae60; }
        .running { border-left: 4px solid #f39c12; }
        .log-snippet { background: #2c3e50; color: #ecf0f1; padding: 10px; border-radius: 3px; font-family: monospace; font-size: 12px; overflow-x: auto; }
        table { width: 100%; border-collapse: collapse; margin: 10px 0; }
        th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #3498db; color: white; }
        .status-badge { padding: 3px 8px; border-radius: 3px; font-size: 12px; font-weight: bold; }
        .badge-failed { background: #e74c3c; color: white; }
        .badge-finished { background: #27ae60; color: white; }
        .badge-running { background: #f39c12; color: white; }
        a { color: #3498db; text-decoration: none; }
        a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Daily Client Process Report</h1>
        <p>Generated: {{.GeneratedAt}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <table>
            <tr>
                <th>Total Processes</th>
                <th>Finished</th>
                <th>Failed</th>
                <th>Running</th>
            </tr>
            <tr>
                <td><strong>{{.Total}}</strong></td>
                <td><span class="status-badge badge-finished">{{.FinishedCount}}</span></td>
                <td><span class="status-badge badge-failed">{{.FailedCount}}</span></td>
                <td><span class="status-badge badge-running">{{.RunningCount}}</span></td>
            </tr>
        </table>
    </div>
{{if .Failed}}
    <div class="section">
        <h2 class="section-title">Failed Processes</h2>
{{range .Failed}}
        <div class="process-card failed">
            <h3>{{.Name}}</h3>
            <table>
                <tr><td><strong>Process UUID:</strong></td><td>{{.ProcessUUID}}</td></tr>
                <tr><td><strong>Status:</strong></td><td>{{.StatusName}}</td></tr>
                <tr><td><strong>Start Time:</strong></td><td>{{.StartTime}}</td></tr>
                <tr><td><strong>Source:</strong></td><td>{{.SourceAlias}}</td></tr>
            </table>
{{if .LogFound}}
            <h4>Error Summary:</h4>
            <div class="log-snippet">{{.SummaryHTML}}</div>
            <p><small>Full log available at: {{.SavedPath}}</small></p>
{{else}}
            <p><em>Log file not found</em></p>
{{end}}
        </div>
{{end}}
    </div>
{{end}}
{{if .Finished}}
    <div class="section">
        <h2 class="section-title">Finished Processes</h2>
{{range .Finished}}
        <div class="process-card finished">
            <h3>{{.Name}}</h3>
            <table>
                <tr><td><strong>Process UUID:</strong></td><td>{{.ProcessUUID}}</td></tr>
                <tr><td><strong>Status:</strong></td><td>{{.StatusName}}</td></tr>
                <tr><td><strong>Start Time:</strong></td><td>{{.StartTime}}</td></tr>
                <tr><td><strong>Stop Time:</strong></td><td>{{.StopTime}}</td></tr>
                <tr><td><strong>Duration:</strong></td><td>{{.Duration}}</td></tr>
                <tr><td><strong>Source:</strong></td><td>{{.SourceAlias}}</td></tr>
{{if .VideoLink}}
                <tr><td><strong>Video:</strong></td><td><a href="{{.VideoLink}}">View in OneDrive</a></td></tr>
{{else}}
                <tr><td><strong>Video:</strong></td><td><em>Not found in OneDrive</em></td></tr>
{{end}}
            </table>
        </div>
{{end}}
    </div>
{{end}}
{{if .Running}}
    <div class="section">
        <h2 class="section-title">Running Processes</h2>
{{range .Running}}
        <div class="process-card running">
            <h3>{{.Name}}</h3>
            <table>
                <tr><td><strong>Process UUID:</strong></td><td>{{.ProcessUUID}}</td></tr>
                <tr><td><strong>Status:</strong></td><td>{{.StatusName}}</td></tr>
                <tr><td><strong>Start Time:</strong></td><td>{{.StartTime}}</td></tr>
                <tr><td><strong>Elapsed:</strong></td><td>{{.Elapsed}}</td></tr>
            </table>
        </div>
{{end}}
    </div>
{{end}}
    <div class="section">
        <p style="color: #7f8c8d; font-size: 12px;">
            <em>This is an automated report generated by the Client Process Monitoring System.</em>
        </p>
    </div>
</body>
</html>
`
