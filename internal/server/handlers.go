// Package server exposes HTTP handlers, including WebSocket upgrades, health
// checks, and the built-in chat page.
package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// WebSocketHandler handles WebSocket upgrade requests. It upgrades the HTTP
// connection, wraps it in a Client, and hands it to the hub.
func WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(conn, hub, r.RemoteAddr)
	client.Start()
}

// HealthHandler provides a simple health check endpoint that returns server
// status as plain text.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Parlor relay is running!")
}

// TestPageHandler serves an HTML chat page speaking the relay's JSON frame
// protocol: it identifies with a name, renders the history replay and the
// assigned color, and exchanges chat messages.
func TestPageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Parlor Chat</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; max-width: 700px; }
        #messages {
            border: 1px solid #ccc;
            height: 300px;
            padding: 10px;
            overflow-y: scroll;
            margin: 10px 0;
            background-color: #f9f9f9;
        }
        .msg-time { color: #999; font-size: 0.8em; margin-right: 6px; }
        input[type="text"] { width: 300px; padding: 5px; margin-right: 10px; }
        button {
            padding: 5px 15px;
            background-color: #007cba;
            color: white;
            border: none;
            cursor: pointer;
        }
        button:hover { background-color: #005a87; }
        .status { margin: 10px 0; padding: 5px; border-radius: 3px; }
        .connected { background-color: #d4edda; color: #155724; }
        .disconnected { background-color: #f8d7da; color: #721c24; }
    </style>
</head>
<body>
    <h1>Parlor Chat</h1>

    <div id="status" class="status disconnected">Disconnected</div>

    <div>
        <input type="text" id="nameInput" placeholder="Your name...">
        <button id="joinButton" onclick="join()">Join</button>
    </div>
    <div style="margin-top:10px">
        <input type="text" id="messageInput" placeholder="Type a message..." disabled>
        <button id="sendButton" onclick="sendMessage()" disabled>Send</button>
    </div>

    <div id="messages"></div>

    <script>
        let ws = null;
        let myColor = null;
        const messagesDiv = document.getElementById('messages');
        const nameInput = document.getElementById('nameInput');
        const messageInput = document.getElementById('messageInput');
        const sendButton = document.getElementById('sendButton');
        const statusDiv = document.getElementById('status');

        function renderMessage(msg) {
            const el = document.createElement('div');
            const when = new Date(msg.time).toLocaleTimeString();
            el.innerHTML = '<span class="msg-time">' + when + '</span>' +
                '<strong style="color:' + (msg.color || 'black') + '">' +
                msg.author + ':</strong> ' + msg.text;
            messagesDiv.appendChild(el);
            messagesDiv.scrollTop = messagesDiv.scrollHeight;
        }

        function renderInfo(text) {
            const el = document.createElement('div');
            el.style.color = 'gray';
            el.innerHTML = '<em>' + text + '</em>';
            messagesDiv.appendChild(el);
        }

        function join() {
            const name = nameInput.value.trim();
            if (!name) { return; }

            ws = new WebSocket('ws://' + location.host + '/ws');

            ws.onopen = function() {
                statusDiv.textContent = 'Connected';
                statusDiv.className = 'status connected';
                ws.send(JSON.stringify({ type: 'userData', data: { name: name } }));
                messageInput.disabled = false;
                sendButton.disabled = false;
                nameInput.disabled = true;
                document.getElementById('joinButton').disabled = true;
            };

            ws.onmessage = function(event) {
                const frame = JSON.parse(event.data);
                if (frame.type === 'history') {
                    frame.data.forEach(renderMessage);
                } else if (frame.type === 'color') {
                    myColor = frame.data;
                    renderInfo('You chat as <strong style="color:' + myColor + '">' +
                        name + '</strong>');
                } else if (frame.type === 'message') {
                    renderMessage(frame.data);
                }
            };

            ws.onclose = function() {
                statusDiv.textContent = 'Disconnected';
                statusDiv.className = 'status disconnected';
                messageInput.disabled = true;
                sendButton.disabled = true;
                renderInfo('Connection closed');
                ws = null;
            };
        }

        function sendMessage() {
            const text = messageInput.value.trim();
            if (text && ws && ws.readyState === WebSocket.OPEN) {
                ws.send(JSON.stringify({ type: 'message', data: text }));
                messageInput.value = '';
            }
        }

        messageInput.addEventListener('keypress', function(e) {
            if (e.key === 'Enter') { sendMessage(); }
        });
    </script>
</body>
</html>`
	if _, err := fmt.Fprint(w, html); err != nil {
		logger.Warn().Err(err).Msg("writing html response")
	}
}
